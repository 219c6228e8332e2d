package entities

// Connection maps an API Gateway websocket connection to the signed-in user.
type Connection struct {
	Id     string `dynamodbav:"Id"`
	UserId string `dynamodbav:"UserId"`
}
