package friendship

import (
	"context"
	"errors"

	"github.com/teamly-app/teamly-server/internal/domains/entities"
)

var (
	ErrSelfLookup           = errors.New("relationship state undefined for own profile")
	ErrSelfRequest          = errors.New("cannot send a friend request to yourself")
	ErrAlreadyExists        = errors.New("friendship or request already exists")
	ErrInvalidAction        = errors.New("invalid response action")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrFriendshipNotFound   = errors.New("friendship not found")
)

// Store is the slice of the storage layer the reconciler depends on.
// Satisfied by the DynamoDB storage client and by the in-memory fake
// used in tests.
type Store interface {
	GetFriendship(ctx context.Context, userId, friendId string) (entities.Friendship, error)
	PutFriendship(ctx context.Context, friendship entities.Friendship) error
	UpdateFriendshipStatus(ctx context.Context, userId, friendId, status string) error
	DeleteFriendship(ctx context.Context, userId, friendId string) error

	GetNotification(ctx context.Context, id string) (entities.Notification, error)
	PutNotification(ctx context.Context, notification entities.Notification) error
	UpdateNotificationType(ctx context.Context, id, notificationType string) error
}
