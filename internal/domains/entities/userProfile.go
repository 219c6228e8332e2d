package entities

import "time"

type UserProfile struct {
	UserId            string    `dynamodbav:"UserId"`
	Username          string    `dynamodbav:"Username"`
	FullName          string    `dynamodbav:"FullName"`
	Picture           string    `dynamodbav:"Picture"`
	CollegeId         string    `dynamodbav:"CollegeId"`
	DeviceEndpointArn string    `dynamodbav:"DeviceEndpointArn"`
	CreatedAt         time.Time `dynamodbav:"CreatedAt"`
}
