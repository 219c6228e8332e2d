package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/teamly-app/teamly-server/internal/domains/entities"
)

var (
	ErrMatchNotFound   = errors.New("match not found")
	ErrRsvpNotFound    = errors.New("rsvp not found")
	ErrInvalidSchedule = errors.New("invalid match date or time")
	ErrInvalidCapacity = errors.New("players needed must be positive")
	ErrHostRsvp        = errors.New("host cannot join or leave own match")
	ErrAlreadyJoined   = errors.New("already joined this match")
	ErrNotJoined       = errors.New("not joined to this match")
)

// Store is the storage slice the rsvp flows depend on.
type Store interface {
	GetMatch(ctx context.Context, matchId string) (entities.Match, error)
	PutMatch(ctx context.Context, match entities.Match) error
	AddToPlayersRsvped(ctx context.Context, matchId string, delta int) error
	GetRsvp(ctx context.Context, matchId, userId string) (entities.Rsvp, error)
	PutRsvp(ctx context.Context, rsvp entities.Rsvp) error
	DeleteRsvp(ctx context.Context, matchId, userId string) error
	CountRsvps(ctx context.Context, matchId string) (int, error)
}

type Service struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

func NewService(store Store, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{store: store, loc: loc, now: time.Now}
}

// Create validates and inserts a new match. The host counts as the first
// player: the counter starts at one and a matching rsvp row is written.
func (s *Service) Create(ctx context.Context, match entities.Match) (entities.Match, error) {
	if match.PlayersNeeded <= 0 {
		return entities.Match{}, ErrInvalidCapacity
	}
	if _, err := match.StartAt(s.loc); err != nil {
		return entities.Match{}, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	if match.SkillLevel != "" && !entities.ValidSkillLevel(match.SkillLevel) {
		return entities.Match{}, fmt.Errorf("%w: unknown skill level %q", ErrInvalidSchedule, match.SkillLevel)
	}

	now := s.now()
	match.Id = uuid.NewString()
	match.PlayersRsvped = 1
	match.CreatedAt = now
	if err := s.store.PutMatch(ctx, match); err != nil {
		return entities.Match{}, err
	}
	err := s.store.PutRsvp(ctx, entities.Rsvp{
		MatchId:   match.Id,
		UserId:    match.HostUserId,
		CreatedAt: now,
	})
	if err != nil {
		return entities.Match{}, err
	}
	return match, nil
}

// Join adds the user to the match and bumps the counter. The returned
// count is re-fetched fresh rather than derived locally.
func (s *Service) Join(ctx context.Context, matchId, userId string) (int, error) {
	match, err := s.store.GetMatch(ctx, matchId)
	if err != nil {
		return 0, err
	}
	if match.HostUserId == userId {
		return 0, ErrHostRsvp
	}

	_, err = s.store.GetRsvp(ctx, matchId, userId)
	if err == nil {
		return 0, ErrAlreadyJoined
	}
	if !errors.Is(err, ErrRsvpNotFound) {
		return 0, err
	}

	err = s.store.PutRsvp(ctx, entities.Rsvp{
		MatchId:   matchId,
		UserId:    userId,
		CreatedAt: s.now(),
	})
	if err != nil {
		return 0, err
	}
	if err := s.store.AddToPlayersRsvped(ctx, matchId, 1); err != nil {
		return 0, err
	}
	return s.store.CountRsvps(ctx, matchId)
}

// Leave removes the user's rsvp and decrements the counter.
func (s *Service) Leave(ctx context.Context, matchId, userId string) (int, error) {
	match, err := s.store.GetMatch(ctx, matchId)
	if err != nil {
		return 0, err
	}
	if match.HostUserId == userId {
		return 0, ErrHostRsvp
	}

	if _, err := s.store.GetRsvp(ctx, matchId, userId); err != nil {
		if errors.Is(err, ErrRsvpNotFound) {
			return 0, ErrNotJoined
		}
		return 0, err
	}

	if err := s.store.DeleteRsvp(ctx, matchId, userId); err != nil {
		return 0, err
	}
	if err := s.store.AddToPlayersRsvped(ctx, matchId, -1); err != nil {
		return 0, err
	}
	return s.store.CountRsvps(ctx, matchId)
}
