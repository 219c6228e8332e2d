package schedule

import "github.com/teamly-app/teamly-server/internal/domains/entities"

type TimeWindow string

const (
	WindowDay   TimeWindow = "day"
	WindowNight TimeWindow = "night"
)

// Filter combines the independently selected match filter criteria.
// Every empty or false criterion is a no-op; active criteria are ANDed.
type Filter struct {
	SkillLevels     []string
	TimeWindows     []TimeWindow
	FillingFastOnly bool
}

// Apply returns the matches passing every active criterion. The input
// slice is never mutated.
func (f Filter) Apply(p *Partitioner, matches []entities.Match) []entities.Match {
	out := make([]entities.Match, 0, len(matches))
	for _, match := range matches {
		if f.keep(p, match) {
			out = append(out, match)
		}
	}
	return out
}

func (f Filter) keep(p *Partitioner, match entities.Match) bool {
	if len(f.SkillLevels) > 0 && !contains(f.SkillLevels, match.SkillLevel) {
		return false
	}
	if !f.keepWindow(p, match) {
		return false
	}
	if f.FillingFastOnly && TierFor(FillRatio(match)) != TierFillingFast {
		return false
	}
	return true
}

func (f Filter) keepWindow(p *Partitioner, match entities.Match) bool {
	// Both windows selected behaves the same as none selected.
	if len(f.TimeWindows) == 0 || len(f.TimeWindows) >= 2 {
		return true
	}
	if p.IsNight(match) {
		return f.TimeWindows[0] == WindowNight
	}
	return f.TimeWindows[0] == WindowDay
}

func contains(levels []string, level string) bool {
	for _, l := range levels {
		if l == level {
			return true
		}
	}
	return false
}
