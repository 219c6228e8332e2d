package dtos

import (
	"time"

	"github.com/teamly-app/teamly-server/internal/domains/entities"
)

type NotificationResponse struct {
	Id         string    `json:"id"`
	SenderId   string    `json:"senderId"`
	ReceiverId string    `json:"receiverId"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	NextPageToken string                 `json:"nextPageToken,omitempty"`
}

func NotificationResponseFromEntity(notification entities.Notification) NotificationResponse {
	return NotificationResponse{
		Id:         notification.Id,
		SenderId:   notification.SenderId,
		ReceiverId: notification.ReceiverId,
		Type:       notification.Type,
		Message:    notification.Message,
		CreatedAt:  notification.CreatedAt,
	}
}

func NotificationListResponseFromEntities(notifications []entities.Notification) NotificationListResponse {
	resp := NotificationListResponse{
		Notifications: make([]NotificationResponse, 0, len(notifications)),
	}
	for _, notification := range notifications {
		resp.Notifications = append(resp.Notifications, NotificationResponseFromEntity(notification))
	}
	return resp
}
