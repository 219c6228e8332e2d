package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/teamly-app/teamly-server/internal/domains/entities"
)

var ErrUserProfileNotFound = fmt.Errorf("user profile not found")

func (client *Client) GetUserProfile(ctx context.Context, userId string) (entities.UserProfile, error) {
	output, err := client.dynamodb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: client.cfg.UserProfilesTableName,
		Key: map[string]types.AttributeValue{
			"UserId": &types.AttributeValueMemberS{Value: userId},
		},
	})
	if err != nil {
		return entities.UserProfile{}, err
	}
	if output.Item == nil {
		return entities.UserProfile{}, ErrUserProfileNotFound
	}
	var profile entities.UserProfile
	if err := attributevalue.UnmarshalMap(output.Item, &profile); err != nil {
		return entities.UserProfile{}, err
	}
	return profile, nil
}

func (client *Client) PutUserProfile(ctx context.Context, profile entities.UserProfile) error {
	av, err := attributevalue.MarshalMap(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal user profile: %w", err)
	}
	_, err = client.dynamodb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: client.cfg.UserProfilesTableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put user profile: %w", err)
	}
	return nil
}

func (client *Client) UpdateUserCollege(ctx context.Context, userId, collegeId string) error {
	_, err := client.dynamodb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: client.cfg.UserProfilesTableName,
		Key: map[string]types.AttributeValue{
			"UserId": &types.AttributeValueMemberS{Value: userId},
		},
		UpdateExpression: aws.String("SET CollegeId = :collegeId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":collegeId": &types.AttributeValueMemberS{Value: collegeId},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update user college: %w", err)
	}
	return nil
}
