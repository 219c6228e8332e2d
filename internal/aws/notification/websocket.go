package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"

	"github.com/teamly-app/teamly-server/internal/domains/entities"
)

// WebsocketDeliverer pushes freshly created notifications to the user's
// live API Gateway websocket connections.
type WebsocketDeliverer struct {
	apiGateway *apigatewaymanagementapi.Client
}

func NewWebsocketDeliverer(apiGatewayClient *apigatewaymanagementapi.Client) *WebsocketDeliverer {
	return &WebsocketDeliverer{apiGateway: apiGatewayClient}
}

// Deliver posts the notification JSON to each connection. The first
// failure is returned; callers log and move on.
func (d *WebsocketDeliverer) Deliver(
	ctx context.Context,
	connections []entities.Connection,
	notification entities.Notification,
) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	for _, connection := range connections {
		_, err := d.apiGateway.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
			ConnectionId: &connection.Id,
			Data:         payload,
		})
		if err != nil {
			return fmt.Errorf("failed to post to connection %s: %w", connection.Id, err)
		}
	}
	return nil
}
