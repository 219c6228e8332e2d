package entities

import "time"

// Rsvp records that a user joined a match. The Rsvps table is the source
// of truth for membership; Match.PlayersRsvped is a denormalized counter.
type Rsvp struct {
	MatchId   string    `dynamodbav:"MatchId"`
	UserId    string    `dynamodbav:"UserId"`
	CreatedAt time.Time `dynamodbav:"CreatedAt"`
}
