package services_test

import (
	"context"
	"testing"

	"github.com/bhhaskin/workspaces_app/internal/apperrors"
	"github.com/bhhaskin/workspaces_app/internal/billing"
	"github.com/bhhaskin/workspaces_app/internal/core/domain"
	portssvc "github.com/bhhaskin/workspaces_app/internal/core/ports/services"
	"github.com/bhhaskin/workspaces_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteForPlan(t *testing.T) {
	standard, ok := domain.PlanBySlug("standard")
	require.True(t, ok)
	business, ok := domain.PlanBySlug("business")
	require.True(t, ok)
	free, ok := domain.PlanBySlug(domain.DefaultPlanSlug)
	require.True(t, ok)

	tests := []struct {
		name          string
		plan          domain.Plan
		activeSeats   int
		billableSeats int
		seatCharge    string
		total         string
	}{
		{"free never charges", free, 10, 7, "0", "0"},
		{"standard within allowance", standard, 5, 0, "0", "12"},
		{"standard over allowance", standard, 8, 3, "13.5", "25.5"},
		{"business over allowance", business, 20, 5, "16.25", "65.25"},
		{"seats below allowance clamp to zero", business, 2, 0, "0", "49"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			billableSeats, seatCharge, total := domain.QuoteForPlan(tt.plan, tt.activeSeats)
			assert.Equal(t, tt.billableSeats, billableSeats)
			assert.Equal(t, tt.seatCharge, seatCharge.String())
			assert.Equal(t, tt.total, total.String())
		})
	}
}

type billingFixture struct {
	workspaceRepo  *MockWorkspaceRepository
	membershipRepo *MockMembershipRepository
	usage          *billing.Manager
	service        portssvc.BillingSvcFacade
}

// memUsageStore keeps usage counters in memory for tests.
type memUsageStore struct {
	counters map[string]map[string]decimal.Decimal
}

func newMemUsageStore() *memUsageStore {
	return &memUsageStore{counters: make(map[string]map[string]decimal.Decimal)}
}

func (s *memUsageStore) GetUsage(_ context.Context, workspaceID string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(s.counters[workspaceID]))
	for metric, value := range s.counters[workspaceID] {
		out[metric] = value
	}
	return out, nil
}

func (s *memUsageStore) SetUsage(_ context.Context, workspaceID, metric string, value decimal.Decimal) error {
	if s.counters[workspaceID] == nil {
		s.counters[workspaceID] = make(map[string]decimal.Decimal)
	}
	s.counters[workspaceID][metric] = value
	return nil
}

func newBillingFixture(workspace *domain.Workspace, memberIDs ...string) *billingFixture {
	return newBillingFixtureWith(&billingFixture{}, workspace, memberIDs...)
}

func newBillingFixtureWith(f *billingFixture, workspace *domain.Workspace, memberIDs ...string) *billingFixture {
	memberSet := map[string]bool{}
	for _, id := range memberIDs {
		memberSet[id] = true
	}

	f.workspaceRepo = &MockWorkspaceRepository{
		FindWorkspaceByIDFn: func(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
			if workspaceID == workspace.WorkspaceID {
				ws := *workspace
				return &ws, nil
			}
			return nil, apperrors.ErrNotFound
		},
	}
	f.membershipRepo = &MockMembershipRepository{
		FindMembershipFn: func(ctx context.Context, workspaceID, userID string) (*domain.Membership, error) {
			if memberSet[userID] {
				return activeMembership(workspaceID, userID), nil
			}
			return nil, apperrors.ErrNotFound
		},
		ListActiveMembersFn: func(ctx context.Context, workspaceID string) ([]domain.Membership, error) {
			members := make([]domain.Membership, 0, len(memberIDs))
			for _, id := range memberIDs {
				members = append(members, *activeMembership(workspaceID, id))
			}
			return members, nil
		},
	}
	userRepo := &MockUserRepository{
		FindUserByIDFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return testUser(userID), nil
		},
	}
	roleRepo := &MockRoleRepository{
		FindRolesByMembershipFn: func(ctx context.Context, workspaceID, userID string) ([]domain.Role, error) {
			return nil, apperrors.ErrNotFound
		},
	}

	authorizer := services.NewAuthorizationService(f.membershipRepo, services.NewRoleService(roleRepo))
	workspaceSvc := services.NewWorkspaceService(f.workspaceRepo, f.membershipRepo, userRepo, authorizer)
	f.service = services.NewBillingService(workspaceSvc, f.membershipRepo, f.usage)
	return f
}

func TestQuoteWorkspace(t *testing.T) {
	ctx := context.Background()

	t.Run("seats include the owner", func(t *testing.T) {
		workspace := testWorkspace("owner-1")
		workspace.Meta = map[string]any{"plan": "standard"}
		f := newBillingFixture(workspace, "user-2", "user-3", "user-4", "user-5", "user-6")

		quote, err := f.service.QuoteWorkspace(ctx, "ws-1", "owner-1")
		require.NoError(t, err)
		assert.Equal(t, "standard", quote.PlanSlug)
		assert.Equal(t, 6, quote.ActiveSeats)
		assert.Equal(t, 1, quote.BillableSeats)
		assert.Equal(t, "4.5", quote.SeatCharge.String())
		assert.Equal(t, "16.5", quote.Total.String())
	})

	t.Run("unknown plan falls back to free", func(t *testing.T) {
		workspace := testWorkspace("owner-1")
		workspace.Meta = map[string]any{"plan": "enterprise-platinum"}
		f := newBillingFixture(workspace, "user-2")

		quote, err := f.service.QuoteWorkspace(ctx, "ws-1", "owner-1")
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultPlanSlug, quote.PlanSlug)
		assert.True(t, quote.Total.IsZero())
	})

	t.Run("missing plan metadata defaults to free", func(t *testing.T) {
		f := newBillingFixture(testWorkspace("owner-1"))

		quote, err := f.service.QuoteWorkspace(ctx, "ws-1", "owner-1")
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultPlanSlug, quote.PlanSlug)
		assert.Equal(t, 1, quote.ActiveSeats)
	})

	t.Run("billing contact resolves to owner when unset", func(t *testing.T) {
		f := newBillingFixture(testWorkspace("owner-1"), "user-2")

		quote, err := f.service.QuoteWorkspace(ctx, "ws-1", "owner-1")
		require.NoError(t, err)
		assert.Equal(t, "owner-1", quote.BillingContactID)
	})

	t.Run("view permission enforced", func(t *testing.T) {
		f := newBillingFixture(testWorkspace("owner-1"), "user-2")

		_, err := f.service.QuoteWorkspace(ctx, "ws-1", "stranger")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestUsageReport(t *testing.T) {
	ctx := context.Background()

	t.Run("reports quota metrics against the plan", func(t *testing.T) {
		workspace := testWorkspace("owner-1")
		workspace.Meta = map[string]any{"plan": "standard"}
		store := newMemUsageStore()
		require.NoError(t, store.SetUsage(ctx, "ws-1", domain.MetricProjects, decimal.NewFromInt(30)))

		f := &billingFixture{usage: billing.NewManager(store)}
		f = newBillingFixtureWith(f, workspace, "user-2")

		report, err := f.service.UsageReport(ctx, "ws-1", "user-2")
		require.NoError(t, err)
		require.Len(t, report, 2)

		assert.Equal(t, domain.MetricProjects, report[0].Metric)
		assert.Equal(t, "30", report[0].Used.String())
		require.NotNil(t, report[0].Limit)
		assert.Equal(t, "25", report[0].Limit.String())
		assert.True(t, report[0].OverQuota)
		require.NotNil(t, report[0].Remaining)
		assert.True(t, report[0].Remaining.IsZero())

		assert.Equal(t, domain.MetricStorageMB, report[1].Metric)
		assert.True(t, report[1].Used.IsZero())
		assert.False(t, report[1].OverQuota)
	})

	t.Run("absent usage store reports not found", func(t *testing.T) {
		f := newBillingFixture(testWorkspace("owner-1"), "user-2")

		_, err := f.service.UsageReport(ctx, "ws-1", "owner-1")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("view permission enforced before the store is consulted", func(t *testing.T) {
		f := &billingFixture{usage: billing.NewManager(newMemUsageStore())}
		f = newBillingFixtureWith(f, testWorkspace("owner-1"), "user-2")

		_, err := f.service.UsageReport(ctx, "ws-1", "stranger")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}
