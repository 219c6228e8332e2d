package dtos

import (
	"time"

	"github.com/teamly-app/teamly-server/internal/domains/entities"
)

type UserResponse struct {
	Id        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName,omitempty"`
	Picture   string    `json:"picture"`
	CollegeId string    `json:"collegeId"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserResponseFromEntity maps a profile row; full-name detail is only
// included when the viewer looks at their own profile.
func UserResponseFromEntity(profile entities.UserProfile, full bool) UserResponse {
	user := UserResponse{
		Id:        profile.UserId,
		Username:  profile.Username,
		Picture:   profile.Picture,
		CollegeId: profile.CollegeId,
		CreatedAt: profile.CreatedAt,
	}
	if full {
		user.FullName = profile.FullName
	}
	return user
}

type CollegeResponse struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	City        string `json:"city"`
	MemberCount int    `json:"memberCount"`
}

type CollegeListResponse struct {
	Colleges      []CollegeResponse `json:"colleges"`
	NextPageToken string            `json:"nextPageToken,omitempty"`
}

func CollegeResponseFromEntity(college entities.College) CollegeResponse {
	return CollegeResponse{
		Id:          college.Id,
		Name:        college.Name,
		City:        college.City,
		MemberCount: college.MemberCount,
	}
}

func CollegeListResponseFromEntities(colleges []entities.College) CollegeListResponse {
	resp := CollegeListResponse{
		Colleges: make([]CollegeResponse, 0, len(colleges)),
	}
	for _, college := range colleges {
		resp.Colleges = append(resp.Colleges, CollegeResponseFromEntity(college))
	}
	return resp
}
