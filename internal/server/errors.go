package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/teamly-app/teamly-server/internal/aws/storage"
	"github.com/teamly-app/teamly-server/internal/friendship"
	"github.com/teamly-app/teamly-server/internal/match"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps the core sentinels onto HTTP statuses; anything
// unrecognized is a 500 with a generic body.
func statusFor(err error) int {
	switch {
	case errors.Is(err, match.ErrMatchNotFound),
		errors.Is(err, match.ErrRsvpNotFound),
		errors.Is(err, match.ErrNotJoined),
		errors.Is(err, friendship.ErrNotificationNotFound),
		errors.Is(err, friendship.ErrFriendshipNotFound),
		errors.Is(err, storage.ErrUserProfileNotFound),
		errors.Is(err, storage.ErrCollegeNotFound):
		return http.StatusNotFound
	case errors.Is(err, friendship.ErrAlreadyExists),
		errors.Is(err, match.ErrAlreadyJoined),
		errors.Is(err, match.ErrHostRsvp):
		return http.StatusConflict
	case errors.Is(err, friendship.ErrInvalidAction),
		errors.Is(err, friendship.ErrSelfRequest),
		errors.Is(err, friendship.ErrSelfLookup),
		errors.Is(err, match.ErrInvalidSchedule),
		errors.Is(err, match.ErrInvalidCapacity):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	body := errorResponse{Error: err.Error()}
	if status == http.StatusInternalServerError {
		body.Error = "internal server error"
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
