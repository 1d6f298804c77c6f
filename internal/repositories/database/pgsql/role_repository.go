package pgsql

import (
	"context"
	"errors"

	"github.com/bhhaskin/workspaces_app/internal/apperrors"
	"github.com/bhhaskin/workspaces_app/internal/core/domain"
	portsrepo "github.com/bhhaskin/workspaces_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRoleRepository struct {
	BaseRepository
}

// newPgxRoleRepository creates a new repository for role data.
func newPgxRoleRepository(pool *pgxpool.Pool) portsrepo.RoleRepositoryFacade {
	return &PgxRoleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxRoleRepository implements portsrepo.RoleRepositoryFacade
var _ portsrepo.RoleRepositoryFacade = (*PgxRoleRepository)(nil)

func (r *PgxRoleRepository) FindRoleBySlug(ctx context.Context, slug, scope string) (*domain.Role, error) {
	query := `
		SELECT role_id, name, slug, scope, permissions
		FROM roles
		WHERE slug = $1 AND scope = $2;
	`
	rows, err := r.Pool.Query(ctx, query, slug, scope)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query role "+slug, err)
	}
	role, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Role])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to collect role row", err)
	}
	return &role, nil
}

// FindRolesByMembership resolves the role grants of a membership against the
// role table, preserving grant order. Grants naming deleted roles drop out of
// the join.
func (r *PgxRoleRepository) FindRolesByMembership(ctx context.Context, workspaceID, userID string) ([]domain.Role, error) {
	query := `
		SELECT r.role_id, r.name, r.slug, r.scope, r.permissions
		FROM workspace_memberships m
		JOIN LATERAL unnest(m.role_slugs) WITH ORDINALITY AS g(slug, ord) ON true
		JOIN roles r ON r.slug = g.slug AND r.scope = $3
		WHERE m.workspace_id = $1 AND m.user_id = $2 AND m.removed_at IS NULL
		ORDER BY g.ord;
	`
	rows, err := r.Pool.Query(ctx, query, workspaceID, userID, domain.RoleScopeWorkspace)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query roles for membership", err)
	}
	defer rows.Close()
	roles, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Role])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Role{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect role rows", err)
	}
	if len(roles) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return roles, nil
}

// SaveRole inserts a role, leaving an existing (slug, scope) row untouched.
func (r *PgxRoleRepository) SaveRole(ctx context.Context, role domain.Role) error {
	query := `
		INSERT INTO roles (role_id, name, slug, scope, permissions)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (slug, scope) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query,
		role.RoleID,
		role.Name,
		role.Slug,
		role.Scope,
		role.Permissions,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save role "+role.Slug, err)
	}
	return nil
}
