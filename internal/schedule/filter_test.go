package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamly-app/teamly-server/internal/domains/entities"
)

func filterFixtures() []entities.Match {
	return []entities.Match{
		{Id: "day-beg", Date: "2025-05-10", StartTime: "10:00:00", SkillLevel: entities.SkillLevelBeginner, PlayersRsvped: 1, PlayersNeeded: 10},
		{Id: "night-adv", Date: "2025-05-10", StartTime: "20:00:00", SkillLevel: entities.SkillLevelAdvanced, PlayersRsvped: 9, PlayersNeeded: 10},
		{Id: "day-int", Date: "2025-05-10", StartTime: "14:00:00", SkillLevel: entities.SkillLevelIntermediate, PlayersRsvped: 7, PlayersNeeded: 10},
	}
}

func ids(matches []entities.Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Id)
	}
	return out
}

func TestFilterEmptyKeepsAll(t *testing.T) {
	p := NewPartitioner(time.UTC)
	got := Filter{}.Apply(p, filterFixtures())
	assert.Equal(t, []string{"day-beg", "night-adv", "day-int"}, ids(got))
}

func TestFilterSkillLevelsOrSemantics(t *testing.T) {
	p := NewPartitioner(time.UTC)
	f := Filter{SkillLevels: []string{entities.SkillLevelBeginner, entities.SkillLevelAdvanced}}
	got := f.Apply(p, filterFixtures())
	assert.Equal(t, []string{"day-beg", "night-adv"}, ids(got))
}

func TestFilterTimeWindow(t *testing.T) {
	p := NewPartitioner(time.UTC)

	night := Filter{TimeWindows: []TimeWindow{WindowNight}}.Apply(p, filterFixtures())
	assert.Equal(t, []string{"night-adv"}, ids(night))

	day := Filter{TimeWindows: []TimeWindow{WindowDay}}.Apply(p, filterFixtures())
	assert.Equal(t, []string{"day-beg", "day-int"}, ids(day))

	// Selecting both windows filters nothing.
	both := Filter{TimeWindows: []TimeWindow{WindowDay, WindowNight}}.Apply(p, filterFixtures())
	assert.Len(t, both, 3)
}

func TestFilterFillingFastOnly(t *testing.T) {
	p := NewPartitioner(time.UTC)
	got := Filter{FillingFastOnly: true}.Apply(p, filterFixtures())
	assert.Equal(t, []string{"night-adv", "day-int"}, ids(got))
}

func TestFilterCriteriaAreAnded(t *testing.T) {
	p := NewPartitioner(time.UTC)
	f := Filter{
		SkillLevels:     []string{entities.SkillLevelAdvanced, entities.SkillLevelIntermediate},
		TimeWindows:     []TimeWindow{WindowNight},
		FillingFastOnly: true,
	}
	got := f.Apply(p, filterFixtures())
	require.Len(t, got, 1)
	assert.Equal(t, "night-adv", got[0].Id)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	p := NewPartitioner(time.UTC)
	in := filterFixtures()
	Filter{SkillLevels: []string{entities.SkillLevelBeginner}}.Apply(p, in)
	assert.Equal(t, []string{"day-beg", "night-adv", "day-int"}, ids(in))
}
