package storage

import (
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type Client struct {
	dynamodb *dynamodb.Client
	cfg      config
}

type config struct {
	MatchesTableName       *string
	RsvpsTableName         *string
	FriendshipsTableName   *string
	NotificationsTableName *string
	UserProfilesTableName  *string
	CollegesTableName      *string
	ConnectionsTableName   *string
}

func NewClient(dynamoClient *dynamodb.Client) *Client {
	return &Client{
		dynamodb: dynamoClient,
		cfg:      loadConfig(),
	}
}

func loadConfig() config {
	return config{
		MatchesTableName:       tableName("MATCHES_TABLE_NAME", "Matches"),
		RsvpsTableName:         tableName("RSVPS_TABLE_NAME", "Rsvps"),
		FriendshipsTableName:   tableName("FRIENDSHIPS_TABLE_NAME", "Friendships"),
		NotificationsTableName: tableName("NOTIFICATIONS_TABLE_NAME", "Notifications"),
		UserProfilesTableName:  tableName("USER_PROFILES_TABLE_NAME", "UserProfiles"),
		CollegesTableName:      tableName("COLLEGES_TABLE_NAME", "Colleges"),
		ConnectionsTableName:   tableName("CONNECTIONS_TABLE_NAME", "Connections"),
	}
}

func tableName(envKey, fallback string) *string {
	if v := os.Getenv(envKey); v != "" {
		return aws.String(v)
	}
	return aws.String(fallback)
}
