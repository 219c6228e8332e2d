package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"github.com/teamly-app/teamly-server/internal/aws/auth"
	"github.com/teamly-app/teamly-server/internal/aws/storage"
	"github.com/teamly-app/teamly-server/internal/domains/dtos"
	"github.com/teamly-app/teamly-server/internal/match"
	"github.com/teamly-app/teamly-server/internal/schedule"
	"github.com/teamly-app/teamly-server/pkg/logging"
)

var (
	matchService *match.Service
	partitioner  *schedule.Partitioner
)

func init() {
	cfg, _ := config.LoadDefaultConfig(context.TODO())
	storageClient := storage.NewClient(dynamodb.NewFromConfig(cfg))

	loc, err := time.LoadLocation(os.Getenv("VENUE_TIMEZONE"))
	if err != nil {
		loc = time.UTC
	}
	matchService = match.NewService(storageClient, loc)
	partitioner = schedule.NewPartitioner(loc)
}

func handler(
	ctx context.Context,
	event events.APIGatewayProxyRequest,
) (
	events.APIGatewayProxyResponse,
	error,
) {
	userId := auth.MustAuth(event.RequestContext.Authorizer)

	var req dtos.MatchCreateRequest
	if err := json.Unmarshal([]byte(event.Body), &req); err != nil {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest}, nil
	}

	created, err := matchService.Create(ctx, req.ToEntity(userId))
	if err != nil {
		if errors.Is(err, match.ErrInvalidCapacity) || errors.Is(err, match.ErrInvalidSchedule) {
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusBadRequest,
				Body:       err.Error(),
			}, nil
		}
		logging.Error("failed to create match", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}

	matchJson, err := json.Marshal(dtos.MatchResponseFromEntity(created, partitioner))
	if err != nil {
		logging.Error("failed to create match", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusCreated, Body: string(matchJson)}, nil
}

func main() {
	lambda.Start(handler)
}
