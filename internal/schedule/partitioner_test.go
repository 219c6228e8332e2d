package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamly-app/teamly-server/internal/domains/entities"
)

func testMatch(id, date, start string, rsvped, needed int) entities.Match {
	return entities.Match{
		Id:            id,
		Date:          date,
		StartTime:     start,
		PlayersRsvped: rsvped,
		PlayersNeeded: needed,
	}
}

func TestPartitionSameDay(t *testing.T) {
	p := NewPartitioner(time.UTC)
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	late := testMatch("late", "2025-05-10", "23:59:00", 1, 10)
	early := testMatch("early", "2025-05-10", "00:01:00", 9, 10)

	schedule := p.Partition([]entities.Match{late, early}, now)

	require.Len(t, schedule.Upcoming, 1)
	require.Len(t, schedule.Past, 1)
	assert.Equal(t, "late", schedule.Upcoming[0].Id)
	assert.Equal(t, "early", schedule.Past[0].Id)

	ratio := FillRatio(schedule.Past[0])
	assert.InDelta(t, 0.9, ratio, 1e-9)
	assert.Equal(t, TierFillingFast, TierFor(ratio))
}

func TestPartitionExactNowIsPast(t *testing.T) {
	p := NewPartitioner(time.UTC)
	now := time.Date(2025, 5, 10, 18, 30, 0, 0, time.UTC)

	match := testMatch("m", "2025-05-10", "18:30:00", 0, 4)
	schedule := p.Partition([]entities.Match{match}, now)

	assert.Empty(t, schedule.Upcoming)
	require.Len(t, schedule.Past, 1)
}

func TestPartitionOrderingAndDisjointness(t *testing.T) {
	p := NewPartitioner(time.UTC)
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	matches := []entities.Match{
		testMatch("u2", "2025-05-12", "09:00:00", 0, 4),
		testMatch("p1", "2025-05-09", "20:00:00", 0, 4),
		testMatch("u1", "2025-05-10", "13:00:00", 0, 4),
		testMatch("p2", "2025-05-08", "20:00:00", 0, 4),
		testMatch("u3", "2025-05-12", "10:00:00", 0, 4),
	}

	schedule := p.Partition(matches, now)

	require.Len(t, schedule.Upcoming, 3)
	require.Len(t, schedule.Past, 2)
	assert.Equal(t, "u1", schedule.Upcoming[0].Id)
	assert.Equal(t, "u2", schedule.Upcoming[1].Id)
	assert.Equal(t, "u3", schedule.Upcoming[2].Id)
	// Past is most recent first.
	assert.Equal(t, "p1", schedule.Past[0].Id)
	assert.Equal(t, "p2", schedule.Past[1].Id)

	seen := map[string]int{}
	for _, m := range append(schedule.Upcoming, schedule.Past...) {
		seen[m.Id]++
	}
	assert.Len(t, seen, len(matches))
	for id, n := range seen {
		assert.Equalf(t, 1, n, "match %s placed in more than one bucket", id)
	}
}

func TestPartitionEmptyInput(t *testing.T) {
	p := NewPartitioner(time.UTC)
	schedule := p.Partition(nil, time.Now())
	assert.Empty(t, schedule.Upcoming)
	assert.Empty(t, schedule.Past)
}

func TestTierBoundaries(t *testing.T) {
	assert.Equal(t, TierPlenty, TierFor(0.0))
	assert.Equal(t, TierPlenty, TierFor(0.33))
	assert.Equal(t, TierModerate, TierFor(0.34))
	assert.Equal(t, TierModerate, TierFor(0.66))
	assert.Equal(t, TierFillingFast, TierFor(0.67))
	// Overfull matches stay in the top tier.
	assert.Equal(t, TierFillingFast, TierFor(1.5))
}

func TestIsNightBoundaries(t *testing.T) {
	p := NewPartitioner(time.UTC)

	tests := []struct {
		start string
		night bool
	}{
		{"18:00:00", true},
		{"23:30:00", true},
		{"05:59:59", true},
		{"06:00:00", false},
		{"12:00:00", false},
		{"17:59:59", false},
	}
	for _, tt := range tests {
		match := testMatch("m", "2025-05-10", tt.start, 0, 4)
		assert.Equalf(t, tt.night, p.IsNight(match), "start %s", tt.start)
	}
}
