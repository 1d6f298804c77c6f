package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bhhaskin/workspaces_app/internal/apperrors"
	"github.com/bhhaskin/workspaces_app/internal/billing"
	"github.com/bhhaskin/workspaces_app/internal/core/domain"
	portsrepo "github.com/bhhaskin/workspaces_app/internal/core/ports/repositories"
	portssvc "github.com/bhhaskin/workspaces_app/internal/core/ports/services"
)

// billingService prices a workspace from its plan metadata and active seat
// count. The owner always occupies a seat on top of the membership rows.
// The quota manager is optional; it is present only when the storage layer
// implements billing.UsageStore.
type billingService struct {
	BaseService
	workspaceSvc   portssvc.WorkspaceSvcFacade
	membershipRepo portsrepo.MembershipReader
	usage          *billing.Manager
}

// NewBillingService creates a new instance of billingService. usage may be
// nil when no usage store is available.
func NewBillingService(workspaceSvc portssvc.WorkspaceSvcFacade, membershipRepo portsrepo.MembershipReader, usage *billing.Manager) portssvc.BillingSvcFacade {
	return &billingService{
		workspaceSvc:   workspaceSvc,
		membershipRepo: membershipRepo,
		usage:          usage,
	}
}

var _ portssvc.BillingSvcFacade = (*billingService)(nil)

// planForWorkspace resolves the plan from the workspace's metadata, falling
// back to the default tier when unset or unknown.
func (s *billingService) planForWorkspace(ctx context.Context, workspace *domain.Workspace) domain.Plan {
	plan, known := domain.PlanForMeta(workspace.Meta)
	if !known {
		s.LogWarn(ctx, "Unknown plan slug on workspace, falling back to default",
			slog.String("workspace_id", workspace.WorkspaceID))
	}
	return plan
}

func (s *billingService) QuoteWorkspace(ctx context.Context, workspaceID string, requestingUserID string) (*domain.BillingQuote, error) {
	// View permission is enforced by the workspace fetch.
	workspace, err := s.workspaceSvc.GetWorkspaceByID(ctx, workspaceID, requestingUserID)
	if err != nil {
		return nil, err
	}

	members, err := s.membershipRepo.ListActiveMembers(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members for billing quote: %w", err)
	}

	contact, err := s.workspaceSvc.BillingContact(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	plan := s.planForWorkspace(ctx, workspace)
	activeSeats := len(members) + 1 // the owner holds no membership row
	billableSeats, seatCharge, total := domain.QuoteForPlan(plan, activeSeats)

	return &domain.BillingQuote{
		WorkspaceID:      workspace.WorkspaceID,
		PlanSlug:         plan.Slug,
		ActiveSeats:      activeSeats,
		BillableSeats:    billableSeats,
		BaseCharge:       plan.BasePrice,
		SeatCharge:       seatCharge,
		Total:            total,
		BillingContactID: contact.UserID,
	}, nil
}

// UsageReport computes every quota metric against the workspace's plan. The
// view permission is enforced by the workspace fetch; deployments without a
// usage store report the feature as absent.
func (s *billingService) UsageReport(ctx context.Context, workspaceID string, requestingUserID string) ([]billing.MetricUsage, error) {
	workspace, err := s.workspaceSvc.GetWorkspaceByID(ctx, workspaceID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if s.usage == nil {
		return nil, apperrors.ErrNotFound
	}

	report, err := s.usage.Report(ctx, workspace)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute usage report",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return report, nil
}
