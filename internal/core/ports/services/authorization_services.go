package services

import (
	"context"

	"github.com/bhhaskin/workspaces_app/internal/core/domain"
)

// AuthorizationSvcFacade is the central yes/no decision for a
// (principal, workspace, action) triple. It is a pure decision function: it
// queries membership and role data but never mutates.
type AuthorizationSvcFacade interface {
	// Decide reports whether the principal may perform the action on the
	// workspace. A nil workspace is only valid for create-style actions.
	Decide(ctx context.Context, principal domain.Principal, workspace *domain.Workspace, action domain.WorkspaceAction) (bool, error)

	// Authorize is Decide with a denial error: it returns ErrForbidden when
	// the decision is negative.
	Authorize(ctx context.Context, principal domain.Principal, workspace *domain.Workspace, action domain.WorkspaceAction) error
}
