package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"github.com/teamly-app/teamly-server/internal/aws/auth"
	"github.com/teamly-app/teamly-server/internal/aws/storage"
	"github.com/teamly-app/teamly-server/internal/domains/dtos"
	"github.com/teamly-app/teamly-server/internal/friendship"
	"github.com/teamly-app/teamly-server/pkg/logging"
)

var reconciler *friendship.Reconciler

func init() {
	cfg, _ := config.LoadDefaultConfig(context.TODO())
	reconciler = friendship.NewReconciler(storage.NewClient(dynamodb.NewFromConfig(cfg)))
}

func handler(
	ctx context.Context,
	event events.APIGatewayProxyRequest,
) (
	events.APIGatewayProxyResponse,
	error,
) {
	userId := auth.MustAuth(event.RequestContext.Authorizer)
	subjectId := event.PathParameters["id"]

	state, err := reconciler.State(ctx, userId, subjectId)
	if err != nil {
		if errors.Is(err, friendship.ErrSelfLookup) {
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusBadRequest,
				Body:       err.Error(),
			}, nil
		}
		logging.Error("failed to compute relationship state", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}

	stateJson, err := json.Marshal(dtos.RelationshipResponseFromState(state))
	if err != nil {
		logging.Error("failed to compute relationship state", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Body: string(stateJson)}, nil
}

func main() {
	lambda.Start(handler)
}
