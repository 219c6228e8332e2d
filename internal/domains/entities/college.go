package entities

type College struct {
	Id          string `dynamodbav:"Id"`
	Name        string `dynamodbav:"Name"`
	City        string `dynamodbav:"City"`
	MemberCount int    `dynamodbav:"MemberCount"`
}
