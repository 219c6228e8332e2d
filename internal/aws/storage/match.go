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
	"github.com/teamly-app/teamly-server/internal/match"
)

// ErrMalformedMatch marks rows whose schedule fields fail boundary
// validation. Not-found is reported with the match package's sentinel.
var ErrMalformedMatch = fmt.Errorf("malformed match row")

func (client *Client) GetMatch(ctx context.Context, matchId string) (entities.Match, error) {
	output, err := client.dynamodb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: client.cfg.MatchesTableName,
		Key: map[string]types.AttributeValue{
			"Id": &types.AttributeValueMemberS{Value: matchId},
		},
	})
	if err != nil {
		return entities.Match{}, err
	}
	if output.Item == nil {
		return entities.Match{}, match.ErrMatchNotFound
	}
	return decodeMatch(output.Item)
}

// FetchMatches queries a college's matches within a date range, newest page
// first left to the caller via lastKey. Sport filtering is pushed down as a
// filter expression.
func (client *Client) FetchMatches(
	ctx context.Context,
	collegeId string,
	dateFrom string,
	dateTo string,
	sportId string,
	lastKey map[string]types.AttributeValue,
	limit int32,
) (
	[]entities.Match,
	map[string]types.AttributeValue,
	error,
) {
	input := &dynamodb.QueryInput{
		TableName:              client.cfg.MatchesTableName,
		IndexName:              aws.String("CollegeIndex"),
		KeyConditionExpression: aws.String("CollegeId = :collegeId AND #date BETWEEN :from AND :to"),
		ExpressionAttributeNames: map[string]string{
			"#date": "Date",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":collegeId": &types.AttributeValueMemberS{Value: collegeId},
			":from":      &types.AttributeValueMemberS{Value: dateFrom},
			":to":        &types.AttributeValueMemberS{Value: dateTo},
		},
		ExclusiveStartKey: lastKey,
		ScanIndexForward:  aws.Bool(true),
		Limit:             aws.Int32(limit),
	}
	if sportId != "" {
		input.FilterExpression = aws.String("SportId = :sportId")
		input.ExpressionAttributeValues[":sportId"] = &types.AttributeValueMemberS{Value: sportId}
	}

	output, err := client.dynamodb.Query(ctx, input)
	if err != nil {
		return nil, nil, err
	}

	matches := make([]entities.Match, 0, len(output.Items))
	for _, item := range output.Items {
		match, err := decodeMatch(item)
		if err != nil {
			return nil, nil, err
		}
		matches = append(matches, match)
	}
	return matches, output.LastEvaluatedKey, nil
}

func (client *Client) PutMatch(ctx context.Context, match entities.Match) error {
	av, err := attributevalue.MarshalMap(match)
	if err != nil {
		return fmt.Errorf("failed to marshal match: %w", err)
	}
	_, err = client.dynamodb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: client.cfg.MatchesTableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put match: %w", err)
	}
	return nil
}

// AddToPlayersRsvped atomically adjusts the denormalized rsvp counter.
func (client *Client) AddToPlayersRsvped(ctx context.Context, matchId string, delta int) error {
	_, err := client.dynamodb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: client.cfg.MatchesTableName,
		Key: map[string]types.AttributeValue{
			"Id": &types.AttributeValueMemberS{Value: matchId},
		},
		UpdateExpression: aws.String("ADD PlayersRsvped :delta"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":delta": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", delta)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update rsvp count: %w", err)
	}
	return nil
}

// decodeMatch validates the schedule fields at the boundary so the core
// packages never see an unparseable date or time.
func decodeMatch(item map[string]types.AttributeValue) (entities.Match, error) {
	var match entities.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return entities.Match{}, fmt.Errorf("%w: %v", ErrMalformedMatch, err)
	}
	if _, err := match.StartAt(time.UTC); err != nil {
		return entities.Match{}, fmt.Errorf("%w: match %s: %v", ErrMalformedMatch, match.Id, err)
	}
	return match, nil
}
