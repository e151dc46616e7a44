package dto

import (
	"time"

	"github.com/patientfirst/crm-backend/internal/domain"
)

// StatusResponse is a workflow stage catalog row.
type StatusResponse struct {
	ID          int64  `json:"id"`
	StatusName  string `json:"status_name"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sort_order"`
}

// NewStatusResponses maps the stage catalog.
func NewStatusResponses(statuses []domain.Status) []StatusResponse {
	result := make([]StatusResponse, 0, len(statuses))
	for _, s := range statuses {
		result = append(result, StatusResponse{
			ID:          s.ID,
			StatusName:  string(s.Name),
			Description: s.Description,
			SortOrder:   s.SortOrder,
		})
	}
	return result
}

// RoleResponse is a role catalog row.
type RoleResponse struct {
	ID          int64  `json:"id"`
	Role        string `json:"role"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// NewRoleResponses maps the role catalog.
func NewRoleResponses(roles []domain.RoleRecord) []RoleResponse {
	result := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		result = append(result, RoleResponse{
			ID:          r.ID,
			Role:        string(r.Role),
			Description: r.Description,
			Status:      r.Status,
		})
	}
	return result
}

// TeamRequest creates a team.
type TeamRequest struct {
	TeamName string `json:"team_name" validate:"required"`
	Status   string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// TeamResponse is a team row.
type TeamResponse struct {
	ID        int64     `json:"id"`
	TeamName  string    `json:"team_name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTeamResponses maps a team listing.
func NewTeamResponses(teams []domain.Team) []TeamResponse {
	result := make([]TeamResponse, 0, len(teams))
	for _, t := range teams {
		result = append(result, TeamResponse{
			ID:        t.ID,
			TeamName:  t.TeamName,
			Status:    t.Status,
			CreatedAt: t.CreatedAt,
		})
	}
	return result
}

// CommentRequest adds a note to a lead.
type CommentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

// CommentResponse is a lead note with its author name resolved.
type CommentResponse struct {
	ID        int64     `json:"id"`
	LeadID    int64     `json:"lead_id"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCommentResponses maps a note listing.
func NewCommentResponses(comments []domain.Comment) []CommentResponse {
	result := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		result = append(result, CommentResponse{
			ID:        c.ID,
			LeadID:    c.LeadID,
			UserID:    c.UserID,
			UserName:  c.UserName,
			Comment:   c.Comment,
			CreatedAt: c.CreatedAt,
		})
	}
	return result
}

// ActivityResponse is a user activity log row.
type ActivityResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Type        string    `json:"activity_type"`
	Description string    `json:"activity_description"`
	EntityType  *string   `json:"entity_type,omitempty"`
	EntityID    *int64    `json:"entity_id,omitempty"`
	IPAddress   *string   `json:"ip_address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewActivityResponses maps the activity log.
func NewActivityResponses(activities []domain.Activity) []ActivityResponse {
	result := make([]ActivityResponse, 0, len(activities))
	for _, a := range activities {
		result = append(result, ActivityResponse{
			ID:          a.ID,
			UserID:      a.UserID,
			Type:        string(a.Type),
			Description: a.Description,
			EntityType:  a.EntityType,
			EntityID:    a.EntityID,
			IPAddress:   a.IPAddress,
			CreatedAt:   a.CreatedAt,
		})
	}
	return result
}
