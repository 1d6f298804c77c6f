package dto

import (
	"time"

	"github.com/bhhaskin/workspaces_app/internal/core/domain"
)

// --- Workspace DTOs ---

// CreateWorkspaceRequest defines data for creating a new workspace.
type CreateWorkspaceRequest struct {
	Name string         `json:"name" binding:"required,max=255"`
	Slug *string        `json:"slug" binding:"omitempty,max=255"`
	Meta map[string]any `json:"meta"`
}

// UpdateWorkspaceRequest defines data for a partial workspace update.
// Pointers distinguish omitted fields from explicit nulls/zero values.
type UpdateWorkspaceRequest struct {
	Name *string         `json:"name" binding:"omitempty,max=255"`
	Slug *string         `json:"slug" binding:"omitempty,max=255"`
	Meta *map[string]any `json:"meta"`
}

// SetBillingContactRequest designates a member as the billable party.
// A nil UserID clears the designation (falls back to the owner).
type SetBillingContactRequest struct {
	UserID *string `json:"userID"`
}

// WorkspaceResponse defines data returned for a workspace.
type WorkspaceResponse struct {
	WorkspaceID      string         `json:"workspaceID"`
	Name             string         `json:"name"`
	Slug             *string        `json:"slug,omitempty"`
	Meta             map[string]any `json:"meta"`
	OwnerID          string         `json:"ownerID"`
	BillingContactID *string        `json:"billingContactID,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	CreatedBy        string         `json:"createdBy"` // UserID
	LastUpdatedAt    time.Time      `json:"lastUpdatedAt"`
	LastUpdatedBy    string         `json:"lastUpdatedBy"` // UserID

	// Populated only when the listing was asked to expand them via
	// ?include=members,invitations.
	Members     []MemberResponse     `json:"members,omitempty"`
	Invitations []InvitationResponse `json:"invitations,omitempty"`
}

// ToWorkspaceResponse converts domain.Workspace to DTO.
func ToWorkspaceResponse(w *domain.Workspace) WorkspaceResponse {
	meta := w.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	return WorkspaceResponse{
		WorkspaceID:      w.WorkspaceID,
		Name:             w.Name,
		Slug:             w.Slug,
		Meta:             meta,
		OwnerID:          w.OwnerID,
		BillingContactID: w.BillingContactID,
		CreatedAt:        w.CreatedAt,
		CreatedBy:        w.CreatedBy,
		LastUpdatedAt:    w.LastUpdatedAt,
		LastUpdatedBy:    w.LastUpdatedBy,
	}
}

// ListWorkspacesResponse wraps a list of workspaces.
type ListWorkspacesResponse struct {
	Workspaces []WorkspaceResponse `json:"workspaces"`
}

// ToListWorkspacesResponse converts a slice of domain.Workspace to DTO.
func ToListWorkspacesResponse(ws []domain.Workspace) ListWorkspacesResponse {
	list := make([]WorkspaceResponse, len(ws))
	for i, w := range ws {
		list[i] = ToWorkspaceResponse(&w)
	}
	return ListWorkspacesResponse{Workspaces: list}
}
