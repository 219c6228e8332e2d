package friendship

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/teamly-app/teamly-server/internal/domains/entities"
)

type State string

const (
	StateNone            State = "none"
	StateOutgoingPending State = "outgoing_pending"
	StateIncomingPending State = "incoming_pending"
	StateFriends         State = "friends"
)

type Action string

const (
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
)

// Reconciler derives and transitions the relationship between two users.
// Every state is computed fresh from the friendship rows; nothing is
// cached between calls. Multi-row transitions are sequential independent
// writes, not a transaction: a failure between them can leave one row
// written and the other not.
type Reconciler struct {
	store Store
	now   func() time.Time
}

func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store, now: time.Now}
}

// State returns the viewer's relationship to the subject. An accepted
// row in either direction wins over any stale pending row.
func (r *Reconciler) State(ctx context.Context, viewerId, subjectId string) (State, error) {
	if viewerId == subjectId {
		return StateNone, ErrSelfLookup
	}

	outgoing, err := r.getFriendship(ctx, viewerId, subjectId)
	if err != nil {
		return StateNone, err
	}
	incoming, err := r.getFriendship(ctx, subjectId, viewerId)
	if err != nil {
		return StateNone, err
	}

	switch {
	case hasStatus(outgoing, entities.FriendshipStatusAccepted),
		hasStatus(incoming, entities.FriendshipStatusAccepted):
		return StateFriends, nil
	case hasStatus(outgoing, entities.FriendshipStatusPending):
		return StateOutgoingPending, nil
	case hasStatus(incoming, entities.FriendshipStatusPending):
		return StateIncomingPending, nil
	}
	return StateNone, nil
}

// SendRequest creates a pending viewer-to-subject row and a friend_request
// notification for the subject. The existence check and the insert are not
// atomic; two racing requests can both pass the check. The notification
// insert failing after the row is written is reported to the caller even
// though the request itself went through.
func (r *Reconciler) SendRequest(ctx context.Context, viewerId, subjectId string) (entities.Notification, error) {
	if viewerId == subjectId {
		return entities.Notification{}, ErrSelfRequest
	}

	for _, pair := range [][2]string{{viewerId, subjectId}, {subjectId, viewerId}} {
		existing, err := r.getFriendship(ctx, pair[0], pair[1])
		if err != nil {
			return entities.Notification{}, err
		}
		if existing != nil {
			return entities.Notification{}, ErrAlreadyExists
		}
	}

	now := r.now()
	err := r.store.PutFriendship(ctx, entities.Friendship{
		UserId:    viewerId,
		FriendId:  subjectId,
		Status:    entities.FriendshipStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return entities.Notification{}, fmt.Errorf("failed to put friendship: %w", err)
	}

	notification := entities.Notification{
		Id:         uuid.NewString(),
		SenderId:   viewerId,
		ReceiverId: subjectId,
		Type:       entities.NotificationTypeFriendRequest,
		Message:    "sent you a friend request",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := r.store.PutNotification(ctx, notification); err != nil {
		return entities.Notification{}, fmt.Errorf("failed to put notification: %w", err)
	}
	return notification, nil
}

// Respond resolves the pending request behind the given notification.
// It returns the mirrored notification created for the original sender
// so the caller can deliver it.
func (r *Reconciler) Respond(ctx context.Context, notificationId string, action Action) (entities.Notification, error) {
	if action != ActionAccept && action != ActionDecline {
		return entities.Notification{}, ErrInvalidAction
	}

	notification, err := r.store.GetNotification(ctx, notificationId)
	if err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			return entities.Notification{}, err
		}
		return entities.Notification{}, fmt.Errorf("failed to get notification: %w", err)
	}

	if action == ActionAccept {
		return r.accept(ctx, notification)
	}
	return r.decline(ctx, notification)
}

func (r *Reconciler) accept(ctx context.Context, notification entities.Notification) (entities.Notification, error) {
	err := r.store.UpdateNotificationType(ctx, notification.Id, entities.NotificationTypeFriendRequestAccepted)
	if err != nil {
		return entities.Notification{}, fmt.Errorf("failed to update notification: %w", err)
	}

	mirrored, err := r.putMirrored(ctx, notification, entities.NotificationTypeFriendRequestAccepted, "accepted your friend request")
	if err != nil {
		return entities.Notification{}, err
	}

	// Both directional rows end up accepted. An existing row keeps its
	// CreatedAt; a missing one, including the sender row missing entirely,
	// is inserted as accepted directly.
	for _, pair := range [][2]string{
		{notification.SenderId, notification.ReceiverId},
		{notification.ReceiverId, notification.SenderId},
	} {
		if err := r.acceptRow(ctx, pair[0], pair[1]); err != nil {
			return entities.Notification{}, err
		}
	}
	return mirrored, nil
}

func (r *Reconciler) acceptRow(ctx context.Context, userId, friendId string) error {
	existing, err := r.getFriendship(ctx, userId, friendId)
	if err != nil {
		return err
	}
	if existing != nil {
		if err := r.store.UpdateFriendshipStatus(ctx, userId, friendId, entities.FriendshipStatusAccepted); err != nil {
			return fmt.Errorf("failed to update friendship: %w", err)
		}
		return nil
	}
	now := r.now()
	err = r.store.PutFriendship(ctx, entities.Friendship{
		UserId:    userId,
		FriendId:  friendId,
		Status:    entities.FriendshipStatusAccepted,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("failed to put friendship: %w", err)
	}
	return nil
}

func (r *Reconciler) decline(ctx context.Context, notification entities.Notification) (entities.Notification, error) {
	err := r.store.UpdateNotificationType(ctx, notification.Id, entities.NotificationTypeFriendRequestDeclined)
	if err != nil {
		return entities.Notification{}, fmt.Errorf("failed to update notification: %w", err)
	}

	mirrored, err := r.putMirrored(ctx, notification, entities.NotificationTypeFriendRequestDeclined, "declined your friend request")
	if err != nil {
		return entities.Notification{}, err
	}

	// Only the pending sender-to-receiver row is removed. An accepted row
	// between the pair must survive a stray decline.
	existing, err := r.getFriendship(ctx, notification.SenderId, notification.ReceiverId)
	if err != nil {
		return entities.Notification{}, err
	}
	if hasStatus(existing, entities.FriendshipStatusPending) {
		if err := r.store.DeleteFriendship(ctx, notification.SenderId, notification.ReceiverId); err != nil {
			return entities.Notification{}, fmt.Errorf("failed to delete friendship: %w", err)
		}
	}
	return mirrored, nil
}

func (r *Reconciler) putMirrored(
	ctx context.Context,
	notification entities.Notification,
	notificationType,
	message string,
) (entities.Notification, error) {
	now := r.now()
	mirrored := entities.Notification{
		Id:         uuid.NewString(),
		SenderId:   notification.ReceiverId,
		ReceiverId: notification.SenderId,
		Type:       notificationType,
		Message:    message,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := r.store.PutNotification(ctx, mirrored); err != nil {
		return entities.Notification{}, fmt.Errorf("failed to put notification: %w", err)
	}
	return mirrored, nil
}

// getFriendship maps the storage not-found sentinel to a nil row.
func (r *Reconciler) getFriendship(ctx context.Context, userId, friendId string) (*entities.Friendship, error) {
	friendship, err := r.store.GetFriendship(ctx, userId, friendId)
	if err != nil {
		if errors.Is(err, ErrFriendshipNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get friendship: %w", err)
	}
	return &friendship, nil
}

func hasStatus(friendship *entities.Friendship, status string) bool {
	return friendship != nil && friendship.Status == status
}
