package entities

import "time"

const (
	NotificationTypeFriendRequest         = "friend_request"
	NotificationTypeFriendRequestAccepted = "friend_request_accepted"
	NotificationTypeFriendRequestDeclined = "friend_request_declined"
)

type Notification struct {
	Id         string    `dynamodbav:"Id"`
	SenderId   string    `dynamodbav:"SenderId"`
	ReceiverId string    `dynamodbav:"ReceiverId"`
	Type       string    `dynamodbav:"Type"`
	Message    string    `dynamodbav:"Message"`
	CreatedAt  time.Time `dynamodbav:"CreatedAt"`
	UpdatedAt  time.Time `dynamodbav:"UpdatedAt"`
}
