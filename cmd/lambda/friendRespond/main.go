package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"

	"github.com/teamly-app/teamly-server/internal/aws/auth"
	"github.com/teamly-app/teamly-server/internal/aws/notification"
	"github.com/teamly-app/teamly-server/internal/aws/storage"
	"github.com/teamly-app/teamly-server/internal/domains/dtos"
	"github.com/teamly-app/teamly-server/internal/domains/entities"
	"github.com/teamly-app/teamly-server/internal/friendship"
	"github.com/teamly-app/teamly-server/pkg/logging"
)

var (
	storageClient *storage.Client
	notiClient    *notification.Client
	deliverer     *notification.WebsocketDeliverer
	reconciler    *friendship.Reconciler
)

func init() {
	cfg, _ := config.LoadDefaultConfig(context.TODO())
	storageClient = storage.NewClient(dynamodb.NewFromConfig(cfg))
	notiClient = notification.NewClient(sns.NewFromConfig(cfg))
	reconciler = friendship.NewReconciler(storageClient)

	apiEndpoint := fmt.Sprintf(
		"https://%s.execute-api.%s.amazonaws.com/Prod",
		os.Getenv("AWS_API_ID"),
		os.Getenv("AWS_REGION"),
	)
	deliverer = notification.NewWebsocketDeliverer(apigatewaymanagementapi.New(apigatewaymanagementapi.Options{
		BaseEndpoint: aws.String(apiEndpoint),
		Region:       os.Getenv("AWS_REGION"),
		Credentials:  cfg.Credentials,
	}))
}

func handler(
	ctx context.Context,
	event events.APIGatewayProxyRequest,
) (
	events.APIGatewayProxyResponse,
	error,
) {
	auth.MustAuth(event.RequestContext.Authorizer)
	notificationId := event.PathParameters["id"]

	var req dtos.RespondRequest
	if err := json.Unmarshal([]byte(event.Body), &req); err != nil {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest}, nil
	}

	mirrored, err := reconciler.Respond(ctx, notificationId, friendship.Action(req.Action))
	if err != nil {
		switch {
		case errors.Is(err, friendship.ErrNotificationNotFound):
			return events.APIGatewayProxyResponse{StatusCode: http.StatusNotFound}, nil
		case errors.Is(err, friendship.ErrInvalidAction):
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusBadRequest,
				Body:       err.Error(),
			}, nil
		}
		logging.Error("failed to respond to friend request", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}

	deliver(ctx, mirrored)

	mirroredJson, err := json.Marshal(dtos.NotificationResponseFromEntity(mirrored))
	if err != nil {
		logging.Error("failed to respond to friend request", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Body: string(mirroredJson)}, nil
}

func deliver(ctx context.Context, mirrored entities.Notification) {
	connections, err := storageClient.FetchConnectionsByUser(ctx, mirrored.ReceiverId)
	if err != nil {
		logging.Warn("failed to fetch connections", zap.Error(err))
	} else if err := deliverer.Deliver(ctx, connections, mirrored); err != nil {
		logging.Warn("failed to deliver notification", zap.Error(err))
	}

	profile, err := storageClient.GetUserProfile(ctx, mirrored.ReceiverId)
	if err != nil || profile.DeviceEndpointArn == "" {
		return
	}
	err = notiClient.SendPushNotification(ctx, profile.DeviceEndpointArn, "Teamly", mirrored.Message)
	if err != nil {
		logging.Warn("failed to send push notification", zap.Error(err))
	}
}

func main() {
	lambda.Start(handler)
}
