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
	"github.com/teamly-app/teamly-server/pkg/logging"
)

var storageClient *storage.Client

func init() {
	cfg, _ := config.LoadDefaultConfig(context.TODO())
	storageClient = storage.NewClient(dynamodb.NewFromConfig(cfg))
}

func handler(
	ctx context.Context,
	event events.APIGatewayProxyRequest,
) (
	events.APIGatewayProxyResponse,
	error,
) {
	userId := auth.MustAuth(event.RequestContext.Authorizer)
	collegeId := event.PathParameters["id"]

	college, err := storageClient.GetCollege(ctx, collegeId)
	if err != nil {
		if errors.Is(err, storage.ErrCollegeNotFound) {
			return events.APIGatewayProxyResponse{StatusCode: http.StatusNotFound}, nil
		}
		logging.Error("failed to join college", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}

	profile, err := storageClient.GetUserProfile(ctx, userId)
	if err != nil {
		logging.Error("failed to join college", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}
	if profile.CollegeId == collegeId {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent}, nil
	}

	if err := storageClient.UpdateUserCollege(ctx, userId, collegeId); err != nil {
		logging.Error("failed to join college", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}
	if err := storageClient.AddToCollegeMemberCount(ctx, collegeId, 1); err != nil {
		logging.Warn("failed to bump member count", zap.Error(err))
	}
	if profile.CollegeId != "" {
		if err := storageClient.AddToCollegeMemberCount(ctx, profile.CollegeId, -1); err != nil {
			logging.Warn("failed to bump member count", zap.Error(err))
		}
	}

	collegeJson, err := json.Marshal(dtos.CollegeResponseFromEntity(college))
	if err != nil {
		logging.Error("failed to join college", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Body: string(collegeJson)}, nil
}

func main() {
	lambda.Start(handler)
}
