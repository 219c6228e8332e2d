package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teamly-app/teamly-server/internal/friendship"
	"github.com/teamly-app/teamly-server/internal/match"
	"github.com/teamly-app/teamly-server/internal/schedule"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(match.ErrMatchNotFound))
	assert.Equal(t, http.StatusNotFound, statusFor(friendship.ErrNotificationNotFound))
	assert.Equal(t, http.StatusConflict, statusFor(friendship.ErrAlreadyExists))
	assert.Equal(t, http.StatusConflict, statusFor(match.ErrHostRsvp))
	assert.Equal(t, http.StatusBadRequest, statusFor(friendship.ErrSelfLookup))
	assert.Equal(t, http.StatusBadRequest, statusFor(match.ErrInvalidCapacity))
	assert.Equal(t, http.StatusInternalServerError, statusFor(fmt.Errorf("dynamo throttled")))
}

func TestStatusForWrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("%w: unknown skill level %q", match.ErrInvalidSchedule, "pro")
	assert.Equal(t, http.StatusBadRequest, statusFor(wrapped))
}

func TestFilterFromQuery(t *testing.T) {
	filter := filterFromQuery("beginner,advanced", "night", "true")

	assert.Equal(t, []string{"beginner", "advanced"}, filter.SkillLevels)
	assert.Equal(t, []schedule.TimeWindow{schedule.WindowNight}, filter.TimeWindows)
	assert.True(t, filter.FillingFastOnly)
}

func TestFilterFromQueryEmpty(t *testing.T) {
	filter := filterFromQuery("", "", "")

	assert.Empty(t, filter.SkillLevels)
	assert.Empty(t, filter.TimeWindows)
	assert.False(t, filter.FillingFastOnly)
}
