package main

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"github.com/teamly-app/teamly-server/internal/aws/auth"
	"github.com/teamly-app/teamly-server/internal/aws/storage"
	"github.com/teamly-app/teamly-server/internal/domains/entities"
	"github.com/teamly-app/teamly-server/pkg/logging"
)

var (
	storageClient     *storage.Client
	cognitoPublicKeys map[string]*rsa.PublicKey
	cognitoIssuer     string
)

func init() {
	cfg, _ := config.LoadDefaultConfig(context.TODO())
	storageClient = storage.NewClient(dynamodb.NewFromConfig(cfg))

	region := os.Getenv("AWS_REGION")
	userPoolId := os.Getenv("COGNITO_USER_POOL_ID")
	cognitoIssuer = fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, userPoolId)

	var err error
	cognitoPublicKeys, err = auth.LoadCognitoPublicKeys(cognitoIssuer + "/.well-known/jwks.json")
	if err != nil {
		logging.Fatal("failed to load cognito public keys", zap.Error(err))
	}
}

// The websocket route has no gateway authorizer, so the token travels in
// the connect request headers and is validated here.
func handler(ctx context.Context, event events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	token := event.Headers["Authorization"]
	if token == "" {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusUnauthorized}, nil
	}

	userId, err := auth.ValidateJWT(token, cognitoIssuer, cognitoPublicKeys)
	if err != nil {
		logging.Warn("rejected websocket connect", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusUnauthorized}, nil
	}

	err = storageClient.PutConnection(ctx, entities.Connection{
		Id:     event.RequestContext.ConnectionID,
		UserId: userId,
	})
	if err != nil {
		logging.Error("failed to store connection", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

func main() {
	lambda.Start(handler)
}
