package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type pushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// SendPushNotification publishes to the device's SNS platform endpoint.
// Callers treat failures as best-effort: the triggering write has already
// succeeded and is never rolled back over a push miss.
func (client *Client) SendPushNotification(
	ctx context.Context,
	endpointArn,
	title,
	body string,
) error {
	payload, err := json.Marshal(pushPayload{Title: title, Body: body})
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}
	message, err := json.Marshal(map[string]string{
		"default": body,
		"GCM":     string(payload),
		"APNS":    string(payload),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push message: %w", err)
	}

	_, err = client.sns.Publish(ctx, &sns.PublishInput{
		Message:          aws.String(string(message)),
		MessageStructure: aws.String("json"),
		TargetArn:        aws.String(endpointArn),
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}
