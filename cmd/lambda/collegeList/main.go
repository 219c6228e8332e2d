package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

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
	startKey, limit, err := extractParameters(event.QueryStringParameters)
	if err != nil {
		logging.Error("failed to list colleges", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest}, nil
	}

	colleges, lastEvaluatedKey, err := storageClient.FetchColleges(ctx, startKey, limit)
	if err != nil {
		logging.Error("failed to list colleges", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}

	resp := dtos.CollegeListResponseFromEntities(colleges)
	if lastEvaluatedKey != nil {
		if id, ok := lastEvaluatedKey["Id"].(*types.AttributeValueMemberS); ok {
			resp.NextPageToken = id.Value
		}
	}

	listJson, err := json.Marshal(resp)
	if err != nil {
		logging.Error("failed to list colleges", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Body: string(listJson)}, nil
}

func extractParameters(params map[string]string) (map[string]types.AttributeValue, int32, error) {
	limit := int32(100)
	if limitStr, ok := params["limit"]; ok {
		parsed, err := strconv.ParseInt(limitStr, 10, 32)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid limit: %v", err)
		}
		limit = int32(parsed)
	}

	var startKey map[string]types.AttributeValue
	if token, ok := params["startKey"]; ok {
		startKey = map[string]types.AttributeValue{
			"Id": &types.AttributeValueMemberS{Value: token},
		}
	}
	return startKey, limit, nil
}

func main() {
	lambda.Start(handler)
}
