package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/teamly-app/teamly-server/internal/domains/entities"
	"github.com/teamly-app/teamly-server/internal/match"
)

func (client *Client) GetRsvp(ctx context.Context, matchId, userId string) (entities.Rsvp, error) {
	output, err := client.dynamodb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: client.cfg.RsvpsTableName,
		Key: map[string]types.AttributeValue{
			"MatchId": &types.AttributeValueMemberS{Value: matchId},
			"UserId":  &types.AttributeValueMemberS{Value: userId},
		},
	})
	if err != nil {
		return entities.Rsvp{}, err
	}
	if output.Item == nil {
		return entities.Rsvp{}, match.ErrRsvpNotFound
	}
	var rsvp entities.Rsvp
	if err := attributevalue.UnmarshalMap(output.Item, &rsvp); err != nil {
		return entities.Rsvp{}, err
	}
	return rsvp, nil
}

func (client *Client) PutRsvp(ctx context.Context, rsvp entities.Rsvp) error {
	av, err := attributevalue.MarshalMap(rsvp)
	if err != nil {
		return fmt.Errorf("failed to marshal rsvp: %w", err)
	}
	_, err = client.dynamodb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: client.cfg.RsvpsTableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put rsvp: %w", err)
	}
	return nil
}

func (client *Client) DeleteRsvp(ctx context.Context, matchId, userId string) error {
	_, err := client.dynamodb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: client.cfg.RsvpsTableName,
		Key: map[string]types.AttributeValue{
			"MatchId": &types.AttributeValueMemberS{Value: matchId},
			"UserId":  &types.AttributeValueMemberS{Value: userId},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete rsvp: %w", err)
	}
	return nil
}

// CountRsvps is the fresh membership count, always preferred over the
// denormalized counter when the number is about to be trusted.
func (client *Client) CountRsvps(ctx context.Context, matchId string) (int, error) {
	output, err := client.dynamodb.Query(ctx, &dynamodb.QueryInput{
		TableName:              client.cfg.RsvpsTableName,
		KeyConditionExpression: aws.String("MatchId = :matchId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":matchId": &types.AttributeValueMemberS{Value: matchId},
		},
		Select: types.SelectCount,
	})
	if err != nil {
		return 0, err
	}
	return int(output.Count), nil
}
