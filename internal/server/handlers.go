package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/teamly-app/teamly-server/internal/domains/dtos"
	"github.com/teamly-app/teamly-server/internal/domains/entities"
	"github.com/teamly-app/teamly-server/internal/friendship"
	"github.com/teamly-app/teamly-server/internal/schedule"
	"github.com/teamly-app/teamly-server/pkg/logging"
)

const (
	defaultMatchWindowDays = 14
	defaultFetchLimit      = 50
)

func (s *server) handleMatchList(w http.ResponseWriter, r *http.Request, userId string) {
	query := r.URL.Query()

	collegeId := query.Get("collegeId")
	if collegeId == "" {
		profile, err := s.storageClient.GetUserProfile(r.Context(), userId)
		if err != nil {
			writeError(w, err)
			return
		}
		collegeId = profile.CollegeId
	}

	now := time.Now()
	from := query.Get("from")
	if from == "" {
		from = now.AddDate(0, 0, -defaultMatchWindowDays).Format(entities.MatchDateLayout)
	}
	to := query.Get("to")
	if to == "" {
		to = now.AddDate(0, 0, defaultMatchWindowDays).Format(entities.MatchDateLayout)
	}

	matches, _, err := s.storageClient.FetchMatches(
		r.Context(), collegeId, from, to, query.Get("sportId"), nil, defaultFetchLimit,
	)
	if err != nil {
		logging.Error("failed to list matches", zap.Error(err))
		writeError(w, err)
		return
	}

	filter := filterFromQuery(query.Get("skill"), query.Get("window"), query.Get("fillingFast"))
	filtered := filter.Apply(s.partitioner, matches)

	sched := s.partitioner.Partition(filtered, now)
	writeJSON(w, http.StatusOK, dtos.ScheduleResponseFromSchedule(sched, s.partitioner))
}

func filterFromQuery(skill, window, fillingFast string) schedule.Filter {
	var filter schedule.Filter
	if skill != "" {
		filter.SkillLevels = strings.Split(skill, ",")
	}
	if window != "" {
		for _, w := range strings.Split(window, ",") {
			filter.TimeWindows = append(filter.TimeWindows, schedule.TimeWindow(w))
		}
	}
	filter.FillingFastOnly, _ = strconv.ParseBool(fillingFast)
	return filter
}

func (s *server) handleMatchCreate(w http.ResponseWriter, r *http.Request, userId string) {
	var req dtos.MatchCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	created, err := s.matches.Create(r.Context(), req.ToEntity(userId))
	if err != nil {
		writeError(w, err)
		return
	}
	logging.Info("match created",
		zap.String("match_id", created.Id),
		zap.String("host_user_id", userId),
	)
	writeJSON(w, http.StatusCreated, dtos.MatchResponseFromEntity(created, s.partitioner))
}

func (s *server) handleMatchJoin(w http.ResponseWriter, r *http.Request, userId string) {
	matchId := mux.Vars(r)["id"]
	count, err := s.matches.Join(r.Context(), matchId, userId)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.RsvpResponse{MatchId: matchId, PlayersRsvped: count})
}

func (s *server) handleMatchLeave(w http.ResponseWriter, r *http.Request, userId string) {
	matchId := mux.Vars(r)["id"]
	count, err := s.matches.Leave(r.Context(), matchId, userId)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.RsvpResponse{MatchId: matchId, PlayersRsvped: count})
}

func (s *server) handleUserGet(w http.ResponseWriter, r *http.Request, userId string) {
	subjectId := mux.Vars(r)["id"]
	profile, err := s.storageClient.GetUserProfile(r.Context(), subjectId)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.UserResponseFromEntity(profile, subjectId == userId))
}

func (s *server) handleRelationshipGet(w http.ResponseWriter, r *http.Request, userId string) {
	subjectId := mux.Vars(r)["id"]
	state, err := s.reconciler.State(r.Context(), userId, subjectId)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.RelationshipResponseFromState(state))
}

func (s *server) handleFriendRequest(w http.ResponseWriter, r *http.Request, userId string) {
	subjectId := mux.Vars(r)["id"]
	notification, err := s.reconciler.SendRequest(r.Context(), userId, subjectId)
	if err != nil {
		writeError(w, err)
		return
	}
	s.deliver(r, notification)
	writeJSON(w, http.StatusCreated, dtos.NotificationResponseFromEntity(notification))
}

func (s *server) handleFriendRespond(w http.ResponseWriter, r *http.Request, userId string) {
	notificationId := mux.Vars(r)["id"]

	var req dtos.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	mirrored, err := s.reconciler.Respond(r.Context(), notificationId, friendship.Action(req.Action))
	if err != nil {
		writeError(w, err)
		return
	}
	s.deliver(r, mirrored)
	writeJSON(w, http.StatusOK, dtos.NotificationResponseFromEntity(mirrored))
}

// deliver pushes a new notification over the live stream and, when the
// receiver has a registered device, over SNS. Both are best-effort.
func (s *server) deliver(r *http.Request, notification entities.Notification) {
	s.hub.publish(notification)

	profile, err := s.storageClient.GetUserProfile(r.Context(), notification.ReceiverId)
	if err != nil || profile.DeviceEndpointArn == "" {
		return
	}
	err = s.notiClient.SendPushNotification(
		r.Context(), profile.DeviceEndpointArn, "Teamly", notification.Message,
	)
	if err != nil {
		logging.Warn("failed to send push notification",
			zap.String("receiver_id", notification.ReceiverId),
			zap.Error(err),
		)
	}
}

func (s *server) handleNotificationList(w http.ResponseWriter, r *http.Request, userId string) {
	notifications, _, err := s.storageClient.FetchNotifications(r.Context(), userId, nil, defaultFetchLimit)
	if err != nil {
		logging.Error("failed to list notifications", zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.NotificationListResponseFromEntities(notifications))
}

func (s *server) handleCollegeList(w http.ResponseWriter, r *http.Request, _ string) {
	colleges, _, err := s.storageClient.FetchColleges(r.Context(), nil, defaultFetchLimit)
	if err != nil {
		logging.Error("failed to list colleges", zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.CollegeListResponseFromEntities(colleges))
}

func (s *server) handleCollegeJoin(w http.ResponseWriter, r *http.Request, userId string) {
	collegeId := mux.Vars(r)["id"]

	college, err := s.storageClient.GetCollege(r.Context(), collegeId)
	if err != nil {
		writeError(w, err)
		return
	}

	profile, err := s.storageClient.GetUserProfile(r.Context(), userId)
	if err != nil {
		writeError(w, err)
		return
	}
	if profile.CollegeId == collegeId {
		writeJSON(w, http.StatusOK, dtos.CollegeResponseFromEntity(college))
		return
	}

	if err := s.storageClient.UpdateUserCollege(r.Context(), userId, collegeId); err != nil {
		writeError(w, err)
		return
	}
	if err := s.storageClient.AddToCollegeMemberCount(r.Context(), collegeId, 1); err != nil {
		writeError(w, err)
		return
	}
	if profile.CollegeId != "" {
		if err := s.storageClient.AddToCollegeMemberCount(r.Context(), profile.CollegeId, -1); err != nil {
			logging.Warn("failed to decrement previous college",
				zap.String("college_id", profile.CollegeId),
				zap.Error(err),
			)
		}
	}

	college.MemberCount++
	writeJSON(w, http.StatusOK, dtos.CollegeResponseFromEntity(college))
}
