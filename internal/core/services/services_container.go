package services

import (
	"github.com/bhhaskin/workspaces_app/internal/billing"
	portsrepo "github.com/bhhaskin/workspaces_app/internal/core/ports/repositories"
	portssvc "github.com/bhhaskin/workspaces_app/internal/core/ports/services"
	"github.com/bhhaskin/workspaces_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Role resolution and the authorization engine come first since the
	// workspace, membership and invitation services all consult them.
	container.Role = NewRoleService(repos.RoleRepo)
	container.Authorization = NewAuthorizationService(repos.MembershipRepo, container.Role)

	container.User = NewUserService(repos.UserRepo)
	container.Workspace = NewWorkspaceService(
		repos.WorkspaceRepo,
		repos.MembershipRepo,
		repos.UserRepo,
		container.Authorization,
	)
	container.Membership = NewMembershipService(
		repos.MembershipRepo,
		repos.WorkspaceRepo,
		repos.UserRepo,
		container.Role,
		container.Authorization,
	)
	container.Invitation = NewInvitationService(
		repos.InvitationRepo,
		repos.WorkspaceRepo,
		repos.UserRepo,
		container.Role,
		container.Authorization,
	)

	// The quota extension is enabled only when the storage layer can hold
	// usage counters; the core works the same either way.
	var usageManager *billing.Manager
	if store, ok := repos.WorkspaceRepo.(billing.UsageStore); ok {
		usageManager = billing.NewManager(store)
	}
	container.Billing = NewBillingService(container.Workspace, repos.MembershipRepo, usageManager)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
