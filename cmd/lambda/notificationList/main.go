package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
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

	startKey, limit, err := extractParameters(userId, event.QueryStringParameters)
	if err != nil {
		logging.Error("failed to list notifications", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest}, nil
	}

	notifications, lastEvaluatedKey, err := storageClient.FetchNotifications(ctx, userId, startKey, limit)
	if err != nil {
		logging.Error("failed to list notifications", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}

	resp := dtos.NotificationListResponseFromEntities(notifications)
	if lastEvaluatedKey != nil {
		createdAt, _ := lastEvaluatedKey["CreatedAt"].(*types.AttributeValueMemberS)
		id, _ := lastEvaluatedKey["Id"].(*types.AttributeValueMemberS)
		if createdAt != nil && id != nil {
			resp.NextPageToken = createdAt.Value + "," + id.Value
		}
	}

	listJson, err := json.Marshal(resp)
	if err != nil {
		logging.Error("failed to list notifications", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Body: string(listJson)}, nil
}

func extractParameters(userId string, params map[string]string) (map[string]types.AttributeValue, int32, error) {
	limit := int32(50)
	if limitStr, ok := params["limit"]; ok {
		parsed, err := strconv.ParseInt(limitStr, 10, 32)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid limit: %v", err)
		}
		limit = int32(parsed)
	}

	var startKey map[string]types.AttributeValue
	if token, ok := params["startKey"]; ok {
		parts := strings.SplitN(token, ",", 2)
		if len(parts) != 2 {
			return nil, 0, fmt.Errorf("invalid startKey")
		}
		startKey = map[string]types.AttributeValue{
			"ReceiverId": &types.AttributeValueMemberS{Value: userId},
			"CreatedAt":  &types.AttributeValueMemberS{Value: parts[0]},
			"Id":         &types.AttributeValueMemberS{Value: parts[1]},
		}
	}
	return startKey, limit, nil
}

func main() {
	lambda.Start(handler)
}
