package match

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamly-app/teamly-server/internal/domains/entities"
)

type fakeStore struct {
	matches map[string]entities.Match
	rsvps   map[[2]string]entities.Rsvp
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		matches: map[string]entities.Match{},
		rsvps:   map[[2]string]entities.Rsvp{},
	}
}

func (s *fakeStore) GetMatch(_ context.Context, matchId string) (entities.Match, error) {
	m, ok := s.matches[matchId]
	if !ok {
		return entities.Match{}, ErrMatchNotFound
	}
	return m, nil
}

func (s *fakeStore) PutMatch(_ context.Context, m entities.Match) error {
	s.matches[m.Id] = m
	return nil
}

func (s *fakeStore) AddToPlayersRsvped(_ context.Context, matchId string, delta int) error {
	m := s.matches[matchId]
	m.PlayersRsvped += delta
	s.matches[matchId] = m
	return nil
}

func (s *fakeStore) GetRsvp(_ context.Context, matchId, userId string) (entities.Rsvp, error) {
	rsvp, ok := s.rsvps[[2]string{matchId, userId}]
	if !ok {
		return entities.Rsvp{}, ErrRsvpNotFound
	}
	return rsvp, nil
}

func (s *fakeStore) PutRsvp(_ context.Context, rsvp entities.Rsvp) error {
	s.rsvps[[2]string{rsvp.MatchId, rsvp.UserId}] = rsvp
	return nil
}

func (s *fakeStore) DeleteRsvp(_ context.Context, matchId, userId string) error {
	delete(s.rsvps, [2]string{matchId, userId})
	return nil
}

func (s *fakeStore) CountRsvps(_ context.Context, matchId string) (int, error) {
	count := 0
	for key := range s.rsvps {
		if key[0] == matchId {
			count++
		}
	}
	return count, nil
}

func validMatch() entities.Match {
	return entities.Match{
		SportId:       "soccer",
		SportName:     "Soccer",
		Date:          "2025-06-01",
		StartTime:     "19:00:00",
		PlayersNeeded: 10,
		HostUserId:    "host",
		CollegeId:     "c1",
	}
}

func TestCreateHostAutoRsvps(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store, time.UTC)

	created, err := svc.Create(ctx, validMatch())
	require.NoError(t, err)
	require.NotEmpty(t, created.Id)
	assert.Equal(t, 1, created.PlayersRsvped)

	_, ok := store.rsvps[[2]string{created.Id, "host"}]
	assert.True(t, ok)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), time.UTC)

	m := validMatch()
	m.PlayersNeeded = 0
	_, err := svc.Create(ctx, m)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	m = validMatch()
	m.Date = "06/01/2025"
	_, err = svc.Create(ctx, m)
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	m = validMatch()
	m.StartTime = "7pm"
	_, err = svc.Create(ctx, m)
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	m = validMatch()
	m.SkillLevel = "pro"
	_, err = svc.Create(ctx, m)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestJoinAndLeave(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store, time.UTC)

	created, err := svc.Create(ctx, validMatch())
	require.NoError(t, err)

	count, err := svc.Join(ctx, created.Id, "guest")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, store.matches[created.Id].PlayersRsvped)

	count, err = svc.Leave(ctx, created.Id, "guest")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, store.matches[created.Id].PlayersRsvped)
}

func TestJoinRules(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store, time.UTC)

	created, err := svc.Create(ctx, validMatch())
	require.NoError(t, err)

	_, err = svc.Join(ctx, created.Id, "host")
	assert.ErrorIs(t, err, ErrHostRsvp)

	_, err = svc.Join(ctx, created.Id, "guest")
	require.NoError(t, err)
	_, err = svc.Join(ctx, created.Id, "guest")
	assert.ErrorIs(t, err, ErrAlreadyJoined)

	_, err = svc.Join(ctx, "missing", "guest")
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestLeaveRules(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store, time.UTC)

	created, err := svc.Create(ctx, validMatch())
	require.NoError(t, err)

	_, err = svc.Leave(ctx, created.Id, "host")
	assert.ErrorIs(t, err, ErrHostRsvp)

	_, err = svc.Leave(ctx, created.Id, "guest")
	assert.ErrorIs(t, err, ErrNotJoined)
}
