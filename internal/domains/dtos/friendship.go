package dtos

import "github.com/teamly-app/teamly-server/internal/friendship"

type RelationshipResponse struct {
	State string `json:"state"`
}

func RelationshipResponseFromState(state friendship.State) RelationshipResponse {
	return RelationshipResponse{State: string(state)}
}

type RespondRequest struct {
	Action string `json:"action"`
}
