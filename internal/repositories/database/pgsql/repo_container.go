package pgsql

import (
	portsrepo "github.com/bhhaskin/workspaces_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	workspaceRepo := newPgxWorkspaceRepository(dbPool)
	membershipRepo := newPgxMembershipRepository(dbPool)
	invitationRepo := newPgxInvitationRepository(dbPool)
	roleRepo := newPgxRoleRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:       userRepo,
		WorkspaceRepo:  workspaceRepo,
		MembershipRepo: membershipRepo,
		InvitationRepo: invitationRepo,
		RoleRepo:       roleRepo,
	}
}
