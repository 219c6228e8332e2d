package friendship

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamly-app/teamly-server/internal/domains/entities"
)

type fakeStore struct {
	friendships   map[[2]string]entities.Friendship
	notifications map[string]entities.Notification

	failPutNotification bool
	failPutFriendship   bool
	putFriendshipCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		friendships:   map[[2]string]entities.Friendship{},
		notifications: map[string]entities.Notification{},
	}
}

func (s *fakeStore) GetFriendship(_ context.Context, userId, friendId string) (entities.Friendship, error) {
	friendship, ok := s.friendships[[2]string{userId, friendId}]
	if !ok {
		return entities.Friendship{}, ErrFriendshipNotFound
	}
	return friendship, nil
}

func (s *fakeStore) PutFriendship(_ context.Context, friendship entities.Friendship) error {
	s.putFriendshipCalls++
	if s.failPutFriendship {
		return errors.New("put friendship failed")
	}
	s.friendships[[2]string{friendship.UserId, friendship.FriendId}] = friendship
	return nil
}

func (s *fakeStore) UpdateFriendshipStatus(_ context.Context, userId, friendId, status string) error {
	key := [2]string{userId, friendId}
	friendship, ok := s.friendships[key]
	if !ok {
		return ErrFriendshipNotFound
	}
	friendship.Status = status
	friendship.UpdatedAt = time.Now()
	s.friendships[key] = friendship
	return nil
}

func (s *fakeStore) DeleteFriendship(_ context.Context, userId, friendId string) error {
	delete(s.friendships, [2]string{userId, friendId})
	return nil
}

func (s *fakeStore) GetNotification(_ context.Context, id string) (entities.Notification, error) {
	notification, ok := s.notifications[id]
	if !ok {
		return entities.Notification{}, ErrNotificationNotFound
	}
	return notification, nil
}

func (s *fakeStore) PutNotification(_ context.Context, notification entities.Notification) error {
	if s.failPutNotification {
		return errors.New("put notification failed")
	}
	s.notifications[notification.Id] = notification
	return nil
}

func (s *fakeStore) UpdateNotificationType(_ context.Context, id, notificationType string) error {
	notification, ok := s.notifications[id]
	if !ok {
		return ErrNotificationNotFound
	}
	notification.Type = notificationType
	notification.UpdatedAt = time.Now()
	s.notifications[id] = notification
	return nil
}

func (s *fakeStore) notificationTo(receiverId, notificationType string) *entities.Notification {
	for _, n := range s.notifications {
		if n.ReceiverId == receiverId && n.Type == notificationType {
			notification := n
			return &notification
		}
	}
	return nil
}

func TestStatePriority(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	r := NewReconciler(store)

	state, err := r.State(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, StateNone, state)

	store.friendships[[2]string{"alice", "bob"}] = entities.Friendship{
		UserId: "alice", FriendId: "bob", Status: entities.FriendshipStatusPending,
	}
	state, err = r.State(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, StateOutgoingPending, state)

	state, err = r.State(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, StateIncomingPending, state)

	// An accepted row wins even with a stale pending row the other way.
	store.friendships[[2]string{"bob", "alice"}] = entities.Friendship{
		UserId: "bob", FriendId: "alice", Status: entities.FriendshipStatusAccepted,
	}
	state, err = r.State(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, StateFriends, state)
}

func TestStateSelfLookup(t *testing.T) {
	r := NewReconciler(newFakeStore())
	_, err := r.State(context.Background(), "alice", "alice")
	assert.ErrorIs(t, err, ErrSelfLookup)
}

func TestSendRequest(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	r := NewReconciler(store)

	notification, err := r.SendRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, "alice", notification.SenderId)
	assert.Equal(t, "bob", notification.ReceiverId)
	assert.Equal(t, entities.NotificationTypeFriendRequest, notification.Type)

	row := store.friendships[[2]string{"alice", "bob"}]
	assert.Equal(t, entities.FriendshipStatusPending, row.Status)

	state, err := r.State(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, StateOutgoingPending, state)
}

func TestSendRequestDuplicate(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	r := NewReconciler(store)

	_, err := r.SendRequest(ctx, "alice", "bob")
	require.NoError(t, err)

	_, err = r.SendRequest(ctx, "alice", "bob")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	// The reverse direction counts as existing too.
	_, err = r.SendRequest(ctx, "bob", "alice")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestSendRequestSelf(t *testing.T) {
	r := NewReconciler(newFakeStore())
	_, err := r.SendRequest(context.Background(), "alice", "alice")
	assert.ErrorIs(t, err, ErrSelfRequest)
}

func TestRespondAccept(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	r := NewReconciler(store)

	request, err := r.SendRequest(ctx, "alice", "bob")
	require.NoError(t, err)

	mirrored, err := r.Respond(ctx, request.Id, ActionAccept)
	require.NoError(t, err)
	assert.Equal(t, "alice", mirrored.ReceiverId)
	assert.Equal(t, entities.NotificationTypeFriendRequestAccepted, mirrored.Type)

	for _, pair := range [][2]string{{"alice", "bob"}, {"bob", "alice"}} {
		row, ok := store.friendships[pair]
		require.Truef(t, ok, "missing row %v", pair)
		assert.Equal(t, entities.FriendshipStatusAccepted, row.Status)
	}

	state, err := r.State(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, StateFriends, state)

	// The triggering notification was re-typed in place.
	assert.Equal(t,
		entities.NotificationTypeFriendRequestAccepted,
		store.notifications[request.Id].Type,
	)
}

func TestRespondAcceptPreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	r := NewReconciler(store)

	request, err := r.SendRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	createdAt := store.friendships[[2]string{"alice", "bob"}].CreatedAt

	_, err = r.Respond(ctx, request.Id, ActionAccept)
	require.NoError(t, err)
	assert.Equal(t, createdAt, store.friendships[[2]string{"alice", "bob"}].CreatedAt)
}

func TestRespondAcceptMissingSenderRow(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	r := NewReconciler(store)

	// Notification exists but the pending row never made it in.
	store.notifications["n1"] = entities.Notification{
		Id: "n1", SenderId: "alice", ReceiverId: "bob",
		Type: entities.NotificationTypeFriendRequest,
	}

	_, err := r.Respond(ctx, "n1", ActionAccept)
	require.NoError(t, err)
	assert.Equal(t, entities.FriendshipStatusAccepted, store.friendships[[2]string{"alice", "bob"}].Status)
	assert.Equal(t, entities.FriendshipStatusAccepted, store.friendships[[2]string{"bob", "alice"}].Status)
}

func TestRespondDecline(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	r := NewReconciler(store)

	request, err := r.SendRequest(ctx, "alice", "bob")
	require.NoError(t, err)

	mirrored, err := r.Respond(ctx, request.Id, ActionDecline)
	require.NoError(t, err)
	assert.Equal(t, entities.NotificationTypeFriendRequestDeclined, mirrored.Type)

	// The pending row is gone entirely, not marked.
	_, ok := store.friendships[[2]string{"alice", "bob"}]
	assert.False(t, ok)

	state, err := r.State(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, StateNone, state)
	state, err = r.State(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, StateNone, state)
}

func TestRespondDeclineKeepsAcceptedRow(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	r := NewReconciler(store)

	store.friendships[[2]string{"alice", "bob"}] = entities.Friendship{
		UserId: "alice", FriendId: "bob", Status: entities.FriendshipStatusAccepted,
	}
	store.notifications["n1"] = entities.Notification{
		Id: "n1", SenderId: "alice", ReceiverId: "bob",
		Type: entities.NotificationTypeFriendRequest,
	}

	_, err := r.Respond(ctx, "n1", ActionDecline)
	require.NoError(t, err)

	row, ok := store.friendships[[2]string{"alice", "bob"}]
	require.True(t, ok)
	assert.Equal(t, entities.FriendshipStatusAccepted, row.Status)
}

func TestRespondUnknownNotification(t *testing.T) {
	r := NewReconciler(newFakeStore())
	_, err := r.Respond(context.Background(), "missing", ActionAccept)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestRespondInvalidAction(t *testing.T) {
	r := NewReconciler(newFakeStore())
	_, err := r.Respond(context.Background(), "n1", Action("block"))
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestSendRequestPartialWrite(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.failPutNotification = true
	r := NewReconciler(store)

	_, err := r.SendRequest(ctx, "alice", "bob")
	require.Error(t, err)

	// The row write already landed: the known non-transactional window.
	row, ok := store.friendships[[2]string{"alice", "bob"}]
	require.True(t, ok)
	assert.Equal(t, entities.FriendshipStatusPending, row.Status)
}
