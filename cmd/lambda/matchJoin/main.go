package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
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
	"github.com/teamly-app/teamly-server/pkg/logging"
)

var matchService *match.Service

func init() {
	cfg, _ := config.LoadDefaultConfig(context.TODO())
	matchService = match.NewService(storage.NewClient(dynamodb.NewFromConfig(cfg)), time.UTC)
}

func handler(
	ctx context.Context,
	event events.APIGatewayProxyRequest,
) (
	events.APIGatewayProxyResponse,
	error,
) {
	userId := auth.MustAuth(event.RequestContext.Authorizer)
	matchId := event.PathParameters["id"]

	count, err := matchService.Join(ctx, matchId, userId)
	if err != nil {
		switch {
		case errors.Is(err, match.ErrMatchNotFound):
			return events.APIGatewayProxyResponse{StatusCode: http.StatusNotFound}, nil
		case errors.Is(err, match.ErrHostRsvp), errors.Is(err, match.ErrAlreadyJoined):
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusConflict,
				Body:       err.Error(),
			}, nil
		}
		logging.Error("failed to join match", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}

	rsvpJson, err := json.Marshal(dtos.RsvpResponse{MatchId: matchId, PlayersRsvped: count})
	if err != nil {
		logging.Error("failed to join match", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Body: string(rsvpJson)}, nil
}

func main() {
	lambda.Start(handler)
}
