package dto

import (
	"time"

	"github.com/bhhaskin/workspaces_app/internal/core/domain"
)

// --- Membership DTOs ---

// AddMemberRequest defines data for adding a user to a workspace.
type AddMemberRequest struct {
	UserID string  `json:"userID" binding:"required"`
	Role   *string `json:"role" binding:"omitempty,max=255"`
}

// UpdateMemberRequest defines data for replacing a member's role.
type UpdateMemberRequest struct {
	Role string `json:"role" binding:"required,max=255"`
}

// MemberResponse defines data returned about a workspace member.
type MemberResponse struct {
	MembershipID string     `json:"membershipID"`
	UserID       string     `json:"userID"`
	WorkspaceID  string     `json:"workspaceID"`
	Roles        []string   `json:"roles"`
	LastJoinedAt time.Time  `json:"lastJoinedAt"`
	RemovedAt    *time.Time `json:"removedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// ToMemberResponse converts domain.Membership to DTO.
func ToMemberResponse(m *domain.Membership) MemberResponse {
	roles := m.RoleSlugs
	if roles == nil {
		roles = []string{}
	}
	return MemberResponse{
		MembershipID: m.MembershipID,
		UserID:       m.UserID,
		WorkspaceID:  m.WorkspaceID,
		Roles:        roles,
		LastJoinedAt: m.LastJoinedAt,
		RemovedAt:    m.RemovedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ListMembersParams defines query parameters for listing workspace members.
type ListMembersParams struct {
	Limit          int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken      *string `form:"nextToken"`
	IncludeRemoved bool    `form:"includeRemoved,default=false"`
}

// ListMembersResponse wraps a page of workspace members.
type ListMembersResponse struct {
	Members   []MemberResponse `json:"members"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// ToListMembersResponse converts a slice of domain.Membership to DTO.
func ToListMembersResponse(ms []domain.Membership, nextToken *string) ListMembersResponse {
	list := make([]MemberResponse, len(ms))
	for i, m := range ms {
		list[i] = ToMemberResponse(&m)
	}
	return ListMembersResponse{Members: list, NextToken: nextToken}
}
