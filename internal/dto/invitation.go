package dto

import (
	"time"

	"github.com/bhhaskin/workspaces_app/internal/core/domain"
)

// --- Invitation DTOs ---

// CreateInvitationRequest defines data for inviting an email to a workspace.
type CreateInvitationRequest struct {
	Email     string     `json:"email" binding:"required,email,max=255"`
	Role      *string    `json:"role" binding:"omitempty,max=255"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// InvitationResponse defines data returned for an invitation.
type InvitationResponse struct {
	InvitationID string     `json:"invitationID"`
	WorkspaceID  string     `json:"workspaceID"`
	Email        string     `json:"email"`
	Role         *string    `json:"role,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	AcceptedAt   *time.Time `json:"acceptedAt,omitempty"`
	DeclinedAt   *time.Time `json:"declinedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// ToInvitationResponse converts domain.Invitation to DTO.
func ToInvitationResponse(i *domain.Invitation) InvitationResponse {
	return InvitationResponse{
		InvitationID: i.InvitationID,
		WorkspaceID:  i.WorkspaceID,
		Email:        i.Email,
		Role:         i.RoleSlug,
		ExpiresAt:    i.ExpiresAt,
		AcceptedAt:   i.AcceptedAt,
		DeclinedAt:   i.DeclinedAt,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// ListInvitationsResponse wraps a page of invitations. NextToken is nil on
// the last page.
type ListInvitationsResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
	NextToken   *string              `json:"nextToken,omitempty"`
}

// ListInvitationsParams defines query parameters for listing invitations.
type ListInvitationsParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ToListInvitationsResponse converts a page of domain.Invitation to DTO.
func ToListInvitationsResponse(is []domain.Invitation, nextToken *string) ListInvitationsResponse {
	list := make([]InvitationResponse, len(is))
	for i, inv := range is {
		list[i] = ToInvitationResponse(&inv)
	}
	return ListInvitationsResponse{Invitations: list, NextToken: nextToken}
}
