package dtos

import (
	"time"

	"github.com/teamly-app/teamly-server/internal/domains/entities"
	"github.com/teamly-app/teamly-server/internal/schedule"
)

type MatchResponse struct {
	Id            string    `json:"id"`
	SportId       string    `json:"sportId"`
	SportName     string    `json:"sportName"`
	SkillLevel    string    `json:"skillLevel,omitempty"`
	Date          string    `json:"date"`
	StartTime     string    `json:"startTime"`
	PlayersNeeded int       `json:"playersNeeded"`
	PlayersRsvped int       `json:"playersRsvped"`
	HostUserId    string    `json:"hostUserId"`
	CollegeId     string    `json:"collegeId"`
	Venue         string    `json:"venue,omitempty"`
	Description   string    `json:"description,omitempty"`
	FillRatio     float64   `json:"fillRatio"`
	FillTier      string    `json:"fillTier"`
	Night         bool      `json:"night"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ScheduleResponse struct {
	Upcoming      []MatchResponse `json:"upcoming"`
	Past          []MatchResponse `json:"past"`
	NextPageToken string          `json:"nextPageToken,omitempty"`
}

func MatchResponseFromEntity(match entities.Match, p *schedule.Partitioner) MatchResponse {
	ratio := schedule.FillRatio(match)
	return MatchResponse{
		Id:            match.Id,
		SportId:       match.SportId,
		SportName:     match.SportName,
		SkillLevel:    match.SkillLevel,
		Date:          match.Date,
		StartTime:     match.StartTime,
		PlayersNeeded: match.PlayersNeeded,
		PlayersRsvped: match.PlayersRsvped,
		HostUserId:    match.HostUserId,
		CollegeId:     match.CollegeId,
		Venue:         match.Venue,
		Description:   match.Description,
		FillRatio:     ratio,
		FillTier:      schedule.TierFor(ratio).String(),
		Night:         p.IsNight(match),
		CreatedAt:     match.CreatedAt,
	}
}

func ScheduleResponseFromSchedule(s schedule.Schedule, p *schedule.Partitioner) ScheduleResponse {
	resp := ScheduleResponse{
		Upcoming: make([]MatchResponse, 0, len(s.Upcoming)),
		Past:     make([]MatchResponse, 0, len(s.Past)),
	}
	for _, match := range s.Upcoming {
		resp.Upcoming = append(resp.Upcoming, MatchResponseFromEntity(match, p))
	}
	for _, match := range s.Past {
		resp.Past = append(resp.Past, MatchResponseFromEntity(match, p))
	}
	return resp
}

type MatchCreateRequest struct {
	SportId       string `json:"sportId"`
	SportName     string `json:"sportName"`
	SkillLevel    string `json:"skillLevel"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	PlayersNeeded int    `json:"playersNeeded"`
	CollegeId     string `json:"collegeId"`
	Venue         string `json:"venue"`
	Description   string `json:"description"`
}

func (req MatchCreateRequest) ToEntity(hostUserId string) entities.Match {
	return entities.Match{
		SportId:       req.SportId,
		SportName:     req.SportName,
		SkillLevel:    req.SkillLevel,
		Date:          req.Date,
		StartTime:     req.StartTime,
		PlayersNeeded: req.PlayersNeeded,
		HostUserId:    hostUserId,
		CollegeId:     req.CollegeId,
		Venue:         req.Venue,
		Description:   req.Description,
	}
}

type RsvpResponse struct {
	MatchId       string `json:"matchId"`
	PlayersRsvped int    `json:"playersRsvped"`
}
