package pgsql

import (
	"context"
	"errors"

	"github.com/bhhaskin/workspaces_app/internal/apperrors"
	"github.com/bhhaskin/workspaces_app/internal/core/domain"
	portsrepo "github.com/bhhaskin/workspaces_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxWorkspaceRepository struct {
	BaseRepository
}

// newPgxWorkspaceRepository creates a new repository for workspace data.
func newPgxWorkspaceRepository(pool *pgxpool.Pool) portsrepo.WorkspaceRepositoryFacade {
	return &PgxWorkspaceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxWorkspaceRepository implements portsrepo.WorkspaceRepositoryFacade
var _ portsrepo.WorkspaceRepositoryFacade = (*PgxWorkspaceRepository)(nil)

var FULL_WORKSPACE_SELECT_QUERY = `
SELECT
	w.workspace_id, w.name, w.slug, w.meta, w.owner_id, w.billing_contact_id,
	w.created_at, w.created_by, w.last_updated_at, w.last_updated_by
FROM workspaces w
`

// getWorkspaces runs the shared select with the given filter appended.
func (r *PgxWorkspaceRepository) getWorkspaces(ctx context.Context, filterQuery string, args ...any) ([]domain.Workspace, error) {
	query := FULL_WORKSPACE_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workspaces", err)
	}
	defer rows.Close()
	workspaces, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Workspace])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Workspace{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect workspace rows", err)
	}

	return workspaces, nil
}

func (r *PgxWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace) error {
	query := `
		INSERT INTO workspaces (
			workspace_id, name, slug, meta, owner_id, billing_contact_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		workspace.WorkspaceID,
		workspace.Name,
		workspace.Slug,
		workspace.Meta,
		workspace.OwnerID,
		workspace.BillingContactID,
		workspace.CreatedAt,
		workspace.CreatedBy,
		workspace.LastUpdatedAt,
		workspace.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				if pgErr.ConstraintName == "workspaces_slug_key" {
					return apperrors.NewConflictError("workspace slug already in use")
				}
				return apperrors.NewConflictError("workspace ID " + workspace.WorkspaceID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("owner does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save workspace "+workspace.WorkspaceID, err)
	}
	return nil
}

func (r *PgxWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	query := `WHERE w.workspace_id = $1`
	workspaces, err := r.getWorkspaces(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	if len(workspaces) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &workspaces[0], nil
}

func (r *PgxWorkspaceRepository) FindWorkspaceBySlug(ctx context.Context, slug string) (*domain.Workspace, error) {
	query := `WHERE w.slug = $1`
	workspaces, err := r.getWorkspaces(ctx, query, slug)
	if err != nil {
		return nil, err
	}
	if len(workspaces) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &workspaces[0], nil
}

// ListWorkspacesByUserID returns workspaces the user owns plus those where
// an active membership row exists, newest first.
func (r *PgxWorkspaceRepository) ListWorkspacesByUserID(ctx context.Context, userID string) ([]domain.Workspace, error) {
	query := `
		WHERE w.owner_id = $1
		   OR EXISTS (
			SELECT 1 FROM workspace_memberships m
			WHERE m.workspace_id = w.workspace_id
			  AND m.user_id = $1
			  AND m.removed_at IS NULL
		   )
		ORDER BY w.created_at DESC;
	`
	return r.getWorkspaces(ctx, query, userID)
}

func (r *PgxWorkspaceRepository) UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error {
	query := `
		UPDATE workspaces
		SET name = $1, slug = $2, meta = $3, last_updated_at = $4, last_updated_by = $5
		WHERE workspace_id = $6;
	`
	result, err := r.Pool.Exec(ctx, query,
		workspace.Name,
		workspace.Slug,
		workspace.Meta,
		workspace.LastUpdatedAt,
		workspace.LastUpdatedBy,
		workspace.WorkspaceID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("workspace slug already in use")
		}
		return apperrors.NewAppError(500, "failed to update workspace "+workspace.WorkspaceID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateBillingContact sets or clears the billing contact reference.
func (r *PgxWorkspaceRepository) UpdateBillingContact(ctx context.Context, workspaceID string, billingContactID *string, updatedBy string) error {
	query := `
		UPDATE workspaces
		SET billing_contact_id = $1, last_updated_at = NOW(), last_updated_by = $2
		WHERE workspace_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, billingContactID, updatedBy, workspaceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update billing contact for workspace "+workspaceID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteWorkspace removes the workspace row. Membership and invitation rows
// go with it via ON DELETE CASCADE.
func (r *PgxWorkspaceRepository) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	query := `DELETE FROM workspaces WHERE workspace_id = $1;`
	result, err := r.Pool.Exec(ctx, query, workspaceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete workspace "+workspaceID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetUsage retrieves all usage counters of the workspace. Satisfies
// billing.UsageStore; the billing extension is enabled by asserting it at
// composition time.
func (r *PgxWorkspaceRepository) GetUsage(ctx context.Context, workspaceID string) (map[string]decimal.Decimal, error) {
	query := `SELECT metric, value FROM workspace_usage WHERE workspace_id = $1;`
	rows, err := r.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query usage for workspace "+workspaceID, err)
	}
	defer rows.Close()

	counters := map[string]decimal.Decimal{}
	for rows.Next() {
		var metric string
		var value decimal.Decimal
		if err := rows.Scan(&metric, &value); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan usage row", err)
		}
		counters[metric] = value
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read usage rows", err)
	}
	return counters, nil
}

// SetUsage writes one usage counter for the workspace.
func (r *PgxWorkspaceRepository) SetUsage(ctx context.Context, workspaceID, metric string, value decimal.Decimal) error {
	query := `
		INSERT INTO workspace_usage (workspace_id, metric, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (workspace_id, metric) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.Pool.Exec(ctx, query, workspaceID, metric, value); err != nil {
		return apperrors.NewAppError(500, "failed to set usage for workspace "+workspaceID, err)
	}
	return nil
}
