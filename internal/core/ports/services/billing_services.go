package services

import (
	"context"

	"github.com/bhhaskin/workspaces_app/internal/billing"
	"github.com/bhhaskin/workspaces_app/internal/core/domain"
)

// BillingSvcFacade computes charges from the workspace's plan and seat
// usage. It never mutates billing state; invoicing is handled downstream.
type BillingSvcFacade interface {
	// QuoteWorkspace computes the monthly charge for the workspace at its
	// current active seat count; requires the view permission.
	QuoteWorkspace(ctx context.Context, workspaceID string, requestingUserID string) (*domain.BillingQuote, error)

	// UsageReport computes every quota metric of the workspace against its
	// plan; requires the view permission. Returns ErrNotFound when the
	// deployment has no usage store wired in.
	UsageReport(ctx context.Context, workspaceID string, requestingUserID string) ([]billing.MetricUsage, error)
}
