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

var ErrCollegeNotFound = fmt.Errorf("college not found")

func (client *Client) GetCollege(ctx context.Context, id string) (entities.College, error) {
	output, err := client.dynamodb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: client.cfg.CollegesTableName,
		Key: map[string]types.AttributeValue{
			"Id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return entities.College{}, err
	}
	if output.Item == nil {
		return entities.College{}, ErrCollegeNotFound
	}
	var college entities.College
	if err := attributevalue.UnmarshalMap(output.Item, &college); err != nil {
		return entities.College{}, err
	}
	return college, nil
}

func (client *Client) FetchColleges(
	ctx context.Context,
	lastKey map[string]types.AttributeValue,
	limit int32,
) (
	[]entities.College,
	map[string]types.AttributeValue,
	error,
) {
	output, err := client.dynamodb.Scan(ctx, &dynamodb.ScanInput{
		TableName:         client.cfg.CollegesTableName,
		ExclusiveStartKey: lastKey,
		Limit:             aws.Int32(limit),
	})
	if err != nil {
		return nil, nil, err
	}
	var colleges []entities.College
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &colleges); err != nil {
		return nil, nil, err
	}
	return colleges, output.LastEvaluatedKey, nil
}

func (client *Client) AddToCollegeMemberCount(ctx context.Context, id string, delta int) error {
	_, err := client.dynamodb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: client.cfg.CollegesTableName,
		Key: map[string]types.AttributeValue{
			"Id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression: aws.String("ADD MemberCount :delta"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":delta": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", delta)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update member count: %w", err)
	}
	return nil
}
