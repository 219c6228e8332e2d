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

func (client *Client) GetNotification(ctx context.Context, id string) (entities.Notification, error) {
	output, err := client.dynamodb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: client.cfg.NotificationsTableName,
		Key: map[string]types.AttributeValue{
			"Id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return entities.Notification{}, err
	}
	if output.Item == nil {
		return entities.Notification{}, friendship.ErrNotificationNotFound
	}
	var notification entities.Notification
	if err := attributevalue.UnmarshalMap(output.Item, &notification); err != nil {
		return entities.Notification{}, err
	}
	return notification, nil
}

// FetchNotifications lists a user's notifications, newest first.
func (client *Client) FetchNotifications(
	ctx context.Context,
	receiverId string,
	lastKey map[string]types.AttributeValue,
	limit int32,
) (
	[]entities.Notification,
	map[string]types.AttributeValue,
	error,
) {
	output, err := client.dynamodb.Query(ctx, &dynamodb.QueryInput{
		TableName:              client.cfg.NotificationsTableName,
		IndexName:              aws.String("ReceiverIndex"),
		KeyConditionExpression: aws.String("ReceiverId = :receiverId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":receiverId": &types.AttributeValueMemberS{Value: receiverId},
		},
		ExclusiveStartKey: lastKey,
		ScanIndexForward:  aws.Bool(false),
		Limit:             aws.Int32(limit),
	})
	if err != nil {
		return nil, nil, err
	}
	var notifications []entities.Notification
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &notifications); err != nil {
		return nil, nil, err
	}
	return notifications, output.LastEvaluatedKey, nil
}

func (client *Client) PutNotification(ctx context.Context, notification entities.Notification) error {
	av, err := attributevalue.MarshalMap(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	_, err = client.dynamodb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: client.cfg.NotificationsTableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put notification: %w", err)
	}
	return nil
}

func (client *Client) UpdateNotificationType(ctx context.Context, id, notificationType string) error {
	_, err := client.dynamodb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: client.cfg.NotificationsTableName,
		Key: map[string]types.AttributeValue{
			"Id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression: aws.String("SET #type = :type, UpdatedAt = :updatedAt"),
		ExpressionAttributeNames: map[string]string{
			"#type": "Type",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":type":      &types.AttributeValueMemberS{Value: notificationType},
			":updatedAt": &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	return nil
}

func (client *Client) DeleteNotification(ctx context.Context, id string) error {
	_, err := client.dynamodb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: client.cfg.NotificationsTableName,
		Key: map[string]types.AttributeValue{
			"Id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
