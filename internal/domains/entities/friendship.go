package entities

import "time"

const (
	FriendshipStatusPending  = "pending"
	FriendshipStatusAccepted = "accepted"
)

// Friendship is one directed row of the Friendships table. An accepted
// friendship is represented by two rows, one in each direction, both with
// status accepted. Declines delete the pending row instead of marking it.
type Friendship struct {
	UserId    string    `dynamodbav:"UserId"`
	FriendId  string    `dynamodbav:"FriendId"`
	Status    string    `dynamodbav:"Status"`
	CreatedAt time.Time `dynamodbav:"CreatedAt"`
	UpdatedAt time.Time `dynamodbav:"UpdatedAt"`
}
