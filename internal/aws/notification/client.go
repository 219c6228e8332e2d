package notification

import "github.com/aws/aws-sdk-go-v2/service/sns"

type Client struct {
	sns *sns.Client
}

func NewClient(snsClient *sns.Client) *Client {
	return &Client{
		sns: snsClient,
	}
}
