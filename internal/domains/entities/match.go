package entities

import "time"

const (
	SkillLevelBeginner     = "beginner"
	SkillLevelIntermediate = "intermediate"
	SkillLevelExperienced  = "experienced"
	SkillLevelAdvanced     = "advanced"
)

const (
	MatchDateLayout = "2006-01-02"
	MatchTimeLayout = "15:04:05"
)

// Match is one row of the Matches table. Date carries only the calendar
// day and StartTime only the wall clock at the venue; the two are combined
// whenever a match is placed on a timeline.
type Match struct {
	Id            string    `dynamodbav:"Id"`
	SportId       string    `dynamodbav:"SportId"`
	SportName     string    `dynamodbav:"SportName"`
	SkillLevel    string    `dynamodbav:"SkillLevel"`
	Date          string    `dynamodbav:"Date"`      // 2006-01-02
	StartTime     string    `dynamodbav:"StartTime"` // 15:04:05
	PlayersNeeded int       `dynamodbav:"PlayersNeeded"`
	PlayersRsvped int       `dynamodbav:"PlayersRsvped"`
	HostUserId    string    `dynamodbav:"HostUserId"`
	CollegeId     string    `dynamodbav:"CollegeId"`
	Venue         string    `dynamodbav:"Venue"`
	Description   string    `dynamodbav:"Description"`
	CreatedAt     time.Time `dynamodbav:"CreatedAt"`
}

// StartAt combines the match's calendar day with its start clock in the
// given location. The time-of-day of Date itself, if any, is discarded.
func (m Match) StartAt(loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation(MatchDateLayout, m.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	clock, err := time.Parse(MatchTimeLayout, m.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(),
		0, loc,
	), nil
}

func ValidSkillLevel(level string) bool {
	switch level {
	case SkillLevelBeginner, SkillLevelIntermediate, SkillLevelExperienced, SkillLevelAdvanced:
		return true
	}
	return false
}
