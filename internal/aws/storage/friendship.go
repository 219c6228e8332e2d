package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/teamly-app/teamly-server/internal/domains/entities"
	"github.com/teamly-app/teamly-server/internal/friendship"
)

// Not-found sentinels for friendship rows and notifications live in the
// friendship package so the reconciler's Store contract is self-contained.

func (client *Client) GetFriendship(ctx context.Context, userId, friendId string) (entities.Friendship, error) {
	output, err := client.dynamodb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: client.cfg.FriendshipsTableName,
		Key: map[string]types.AttributeValue{
			"UserId":   &types.AttributeValueMemberS{Value: userId},
			"FriendId": &types.AttributeValueMemberS{Value: friendId},
		},
	})
	if err != nil {
		return entities.Friendship{}, err
	}
	if output.Item == nil {
		return entities.Friendship{}, friendship.ErrFriendshipNotFound
	}
	var row entities.Friendship
	if err := attributevalue.UnmarshalMap(output.Item, &row); err != nil {
		return entities.Friendship{}, err
	}
	return row, nil
}

func (client *Client) FetchFriendships(
	ctx context.Context,
	userId string,
	status string,
	lastKey map[string]types.AttributeValue,
	limit int32,
) (
	[]entities.Friendship,
	map[string]types.AttributeValue,
	error,
) {
	input := &dynamodb.QueryInput{
		TableName:              client.cfg.FriendshipsTableName,
		KeyConditionExpression: aws.String("UserId = :userId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userId},
		},
		ExclusiveStartKey: lastKey,
		ScanIndexForward:  aws.Bool(true),
		Limit:             aws.Int32(limit),
	}
	if status != "" {
		input.FilterExpression = aws.String("#status = :status")
		input.ExpressionAttributeNames = map[string]string{"#status": "Status"}
		input.ExpressionAttributeValues[":status"] = &types.AttributeValueMemberS{Value: status}
	}

	output, err := client.dynamodb.Query(ctx, input)
	if err != nil {
		return nil, nil, err
	}
	var friendships []entities.Friendship
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &friendships); err != nil {
		return nil, nil, err
	}
	return friendships, output.LastEvaluatedKey, nil
}

func (client *Client) PutFriendship(ctx context.Context, row entities.Friendship) error {
	av, err := attributevalue.MarshalMap(row)
	if err != nil {
		return fmt.Errorf("failed to marshal friendship: %w", err)
	}
	_, err = client.dynamodb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: client.cfg.FriendshipsTableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put friendship: %w", err)
	}
	return nil
}

func (client *Client) UpdateFriendshipStatus(ctx context.Context, userId, friendId, status string) error {
	_, err := client.dynamodb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: client.cfg.FriendshipsTableName,
		Key: map[string]types.AttributeValue{
			"UserId":   &types.AttributeValueMemberS{Value: userId},
			"FriendId": &types.AttributeValueMemberS{Value: friendId},
		},
		UpdateExpression: aws.String("SET #status = :status, UpdatedAt = :updatedAt"),
		ExpressionAttributeNames: map[string]string{
			"#status": "Status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":    &types.AttributeValueMemberS{Value: status},
			":updatedAt": &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update friendship: %w", err)
	}
	return nil
}

func (client *Client) DeleteFriendship(ctx context.Context, userId, friendId string) error {
	_, err := client.dynamodb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: client.cfg.FriendshipsTableName,
		Key: map[string]types.AttributeValue{
			"UserId":   &types.AttributeValueMemberS{Value: userId},
			"FriendId": &types.AttributeValueMemberS{Value: friendId},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete friendship: %w", err)
	}
	return nil
}
