package schedule

import (
	"sort"
	"time"

	"github.com/teamly-app/teamly-server/internal/domains/entities"
)

type Tier int

const (
	TierPlenty Tier = iota
	TierModerate
	TierFillingFast
)

const (
	nightStartHour = 18
	nightEndHour   = 6
)

// Schedule holds one fetch's worth of matches split around a reference
// instant. Recomputed on every fetch, never persisted.
type Schedule struct {
	Upcoming []entities.Match
	Past     []entities.Match
}

// Partitioner classifies matches relative to wall-clock time in the
// venue's location.
type Partitioner struct {
	loc *time.Location
}

func NewPartitioner(loc *time.Location) *Partitioner {
	if loc == nil {
		loc = time.Local
	}
	return &Partitioner{loc: loc}
}

// Partition splits matches into upcoming and past buckets around now.
// A match is upcoming only if it starts strictly after now; a match
// starting exactly at now is past. Upcoming is sorted soonest first,
// past most recent first. Rows are validated at the storage boundary,
// so date and time fields are assumed parseable here.
func (p *Partitioner) Partition(matches []entities.Match, now time.Time) Schedule {
	var schedule Schedule
	for _, match := range matches {
		if p.startAt(match).After(now) {
			schedule.Upcoming = append(schedule.Upcoming, match)
		} else {
			schedule.Past = append(schedule.Past, match)
		}
	}
	sort.SliceStable(schedule.Upcoming, func(i, j int) bool {
		return p.startAt(schedule.Upcoming[i]).Before(p.startAt(schedule.Upcoming[j]))
	})
	sort.SliceStable(schedule.Past, func(i, j int) bool {
		return p.startAt(schedule.Past[i]).After(p.startAt(schedule.Past[j]))
	})
	return schedule
}

// IsNight reports whether the match starts in the night window
// [18:00, 06:00). 18:00:00 exactly is night, 06:00:00 exactly is day.
func (p *Partitioner) IsNight(match entities.Match) bool {
	hour := p.startAt(match).Hour()
	return hour >= nightStartHour || hour < nightEndHour
}

func (p *Partitioner) startAt(match entities.Match) time.Time {
	at, _ := match.StartAt(p.loc)
	return at
}

// FillRatio is rsvp count over capacity. Capacity is positive by
// creation-time validation; the ratio may exceed 1.0 when concurrent
// joins race the counter and is reported as is.
func FillRatio(match entities.Match) float64 {
	return float64(match.PlayersRsvped) / float64(match.PlayersNeeded)
}

// TierFor buckets a fill ratio for urgency display. Boundary values
// belong to the lower tier.
func TierFor(ratio float64) Tier {
	switch {
	case ratio <= 0.33:
		return TierPlenty
	case ratio <= 0.66:
		return TierModerate
	default:
		return TierFillingFast
	}
}

func (t Tier) String() string {
	switch t {
	case TierPlenty:
		return "plenty"
	case TierModerate:
		return "moderate"
	case TierFillingFast:
		return "filling_fast"
	}
	return "unknown"
}
