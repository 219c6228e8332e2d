package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/teamly-app/teamly-server/internal/aws/auth"
	"github.com/teamly-app/teamly-server/internal/aws/storage"
	"github.com/teamly-app/teamly-server/internal/domains/dtos"
	"github.com/teamly-app/teamly-server/internal/domains/entities"
	"github.com/teamly-app/teamly-server/internal/schedule"
	"github.com/teamly-app/teamly-server/pkg/logging"
)

var (
	storageClient *storage.Client
	partitioner   *schedule.Partitioner
)

func init() {
	cfg, _ := config.LoadDefaultConfig(context.TODO())
	storageClient = storage.NewClient(dynamodb.NewFromConfig(cfg))

	loc, err := time.LoadLocation(os.Getenv("VENUE_TIMEZONE"))
	if err != nil {
		loc = time.UTC
	}
	partitioner = schedule.NewPartitioner(loc)
}

func handler(
	ctx context.Context,
	event events.APIGatewayProxyRequest,
) (
	events.APIGatewayProxyResponse,
	error,
) {
	auth.MustAuth(event.RequestContext.Authorizer)

	params, err := extractParameters(event.QueryStringParameters)
	if err != nil {
		logging.Error("failed to list matches", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest}, nil
	}

	matches, lastEvaluatedKey, err := storageClient.FetchMatches(
		ctx, params.collegeId, params.from, params.to, params.sportId, params.startKey, params.limit,
	)
	if err != nil {
		logging.Error("failed to list matches", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}

	filtered := params.filter.Apply(partitioner, matches)
	sched := partitioner.Partition(filtered, time.Now())

	resp := dtos.ScheduleResponseFromSchedule(sched, partitioner)
	if lastEvaluatedKey != nil {
		resp.NextPageToken = pageTokenFromKey(lastEvaluatedKey)
	}

	scheduleJson, err := json.Marshal(resp)
	if err != nil {
		logging.Error("failed to list matches", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Body: string(scheduleJson)}, nil
}

type parameters struct {
	collegeId string
	from      string
	to        string
	sportId   string
	filter    schedule.Filter
	startKey  map[string]types.AttributeValue
	limit     int32
}

func extractParameters(params map[string]string) (parameters, error) {
	collegeId, ok := params["collegeId"]
	if !ok {
		return parameters{}, fmt.Errorf("missing parameter: collegeId")
	}

	now := time.Now()
	from := params["from"]
	if from == "" {
		from = now.AddDate(0, 0, -14).Format(entities.MatchDateLayout)
	}
	to := params["to"]
	if to == "" {
		to = now.AddDate(0, 0, 14).Format(entities.MatchDateLayout)
	}

	limit := int32(50)
	if limitStr, ok := params["limit"]; ok {
		parsed, err := strconv.ParseInt(limitStr, 10, 32)
		if err != nil {
			return parameters{}, fmt.Errorf("invalid limit: %v", err)
		}
		limit = int32(parsed)
	}

	var filter schedule.Filter
	if skill := params["skill"]; skill != "" {
		filter.SkillLevels = strings.Split(skill, ",")
	}
	if window := params["window"]; window != "" {
		for _, w := range strings.Split(window, ",") {
			filter.TimeWindows = append(filter.TimeWindows, schedule.TimeWindow(w))
		}
	}
	filter.FillingFastOnly, _ = strconv.ParseBool(params["fillingFast"])

	var startKey map[string]types.AttributeValue
	if token, ok := params["startKey"]; ok {
		key, err := keyFromPageToken(token, collegeId)
		if err != nil {
			return parameters{}, err
		}
		startKey = key
	}

	return parameters{
		collegeId: collegeId,
		from:      from,
		to:        to,
		sportId:   params["sportId"],
		filter:    filter,
		startKey:  startKey,
		limit:     limit,
	}, nil
}

func pageTokenFromKey(key map[string]types.AttributeValue) string {
	date, _ := key["Date"].(*types.AttributeValueMemberS)
	id, _ := key["Id"].(*types.AttributeValueMemberS)
	if date == nil || id == nil {
		return ""
	}
	return date.Value + "," + id.Value
}

func keyFromPageToken(token, collegeId string) (map[string]types.AttributeValue, error) {
	parts := strings.SplitN(token, ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid startKey")
	}
	return map[string]types.AttributeValue{
		"CollegeId": &types.AttributeValueMemberS{Value: collegeId},
		"Date":      &types.AttributeValueMemberS{Value: parts[0]},
		"Id":        &types.AttributeValueMemberS{Value: parts[1]},
	}, nil
}

func main() {
	lambda.Start(handler)
}
