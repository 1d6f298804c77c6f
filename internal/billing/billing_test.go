package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bhhaskin/workspaces_app/internal/billing"
	"github.com/bhhaskin/workspaces_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	counters map[string]map[string]decimal.Decimal
	getErr   error
	setErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{counters: make(map[string]map[string]decimal.Decimal)}
}

func (s *fakeStore) GetUsage(_ context.Context, workspaceID string) (map[string]decimal.Decimal, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	out := make(map[string]decimal.Decimal, len(s.counters[workspaceID]))
	for metric, value := range s.counters[workspaceID] {
		out[metric] = value
	}
	return out, nil
}

func (s *fakeStore) SetUsage(_ context.Context, workspaceID, metric string, value decimal.Decimal) error {
	if s.setErr != nil {
		return s.setErr
	}
	if s.counters[workspaceID] == nil {
		s.counters[workspaceID] = make(map[string]decimal.Decimal)
	}
	s.counters[workspaceID][metric] = value
	return nil
}

func planWorkspace(plan string) *domain.Workspace {
	ws := &domain.Workspace{WorkspaceID: "ws-1", Name: "Acme"}
	if plan != "" {
		ws.Meta = map[string]any{"plan": plan}
	}
	return ws
}

func TestRecordUsage(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	manager := billing.NewManager(store)
	ws := planWorkspace("standard")

	value, err := manager.RecordUsage(ctx, ws, domain.MetricProjects, decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.Equal(t, "3", value.String())

	value, err = manager.RecordUsage(ctx, ws, domain.MetricProjects, decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.Equal(t, "5", value.String())

	t.Run("floors at zero", func(t *testing.T) {
		value, err := manager.RecordUsage(ctx, ws, domain.MetricProjects, decimal.NewFromInt(-10))
		require.NoError(t, err)
		assert.True(t, value.IsZero())
	})

	t.Run("propagates store failures", func(t *testing.T) {
		store.getErr = errors.New("connection reset")
		_, err := manager.RecordUsage(ctx, ws, domain.MetricProjects, decimal.NewFromInt(1))
		assert.Error(t, err)
		store.getErr = nil
	})
}

func TestDecrementUsage(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	manager := billing.NewManager(store)
	ws := planWorkspace("standard")

	_, err := manager.RecordUsage(ctx, ws, domain.MetricStorageMB, decimal.NewFromInt(100))
	require.NoError(t, err)

	value, err := manager.DecrementUsage(ctx, ws, domain.MetricStorageMB, decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.Equal(t, "60", value.String())

	value, err = manager.DecrementUsage(ctx, ws, domain.MetricStorageMB, decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.True(t, value.IsZero())
}

func TestSetAndResetUsage(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	manager := billing.NewManager(store)
	ws := planWorkspace("free")

	require.NoError(t, manager.SetUsage(ctx, ws, domain.MetricProjects, decimal.NewFromInt(7)))
	assert.Equal(t, "7", store.counters["ws-1"][domain.MetricProjects].String())

	require.NoError(t, manager.SetUsage(ctx, ws, domain.MetricProjects, decimal.NewFromInt(-3)))
	assert.True(t, store.counters["ws-1"][domain.MetricProjects].IsZero())

	require.NoError(t, manager.SetUsage(ctx, ws, domain.MetricStorageMB, decimal.NewFromInt(256)))
	require.NoError(t, manager.ResetUsage(ctx, ws, domain.MetricStorageMB))
	assert.True(t, store.counters["ws-1"][domain.MetricStorageMB].IsZero())
}

func TestRemaining(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	manager := billing.NewManager(store)
	ws := planWorkspace("free")

	t.Run("full quota when unused", func(t *testing.T) {
		remaining, err := manager.Remaining(ctx, ws, domain.MetricProjects)
		require.NoError(t, err)
		require.NotNil(t, remaining)
		assert.Equal(t, "3", remaining.String())
	})

	t.Run("never negative", func(t *testing.T) {
		require.NoError(t, manager.SetUsage(ctx, ws, domain.MetricProjects, decimal.NewFromInt(9)))
		remaining, err := manager.Remaining(ctx, ws, domain.MetricProjects)
		require.NoError(t, err)
		require.NotNil(t, remaining)
		assert.True(t, remaining.IsZero())
	})

	t.Run("nil for uncapped metrics", func(t *testing.T) {
		remaining, err := manager.Remaining(ctx, ws, "api_calls")
		require.NoError(t, err)
		assert.Nil(t, remaining)
	})
}

func TestOverQuota(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	manager := billing.NewManager(store)
	ws := planWorkspace("free")

	over, err := manager.OverQuota(ctx, ws, domain.MetricProjects)
	require.NoError(t, err)
	assert.False(t, over)

	require.NoError(t, manager.SetUsage(ctx, ws, domain.MetricProjects, decimal.NewFromInt(3)))
	over, err = manager.OverQuota(ctx, ws, domain.MetricProjects)
	require.NoError(t, err)
	assert.False(t, over, "at the limit is not over it")

	require.NoError(t, manager.SetUsage(ctx, ws, domain.MetricProjects, decimal.NewFromInt(4)))
	over, err = manager.OverQuota(ctx, ws, domain.MetricProjects)
	require.NoError(t, err)
	assert.True(t, over)

	over, err = manager.OverQuota(ctx, ws, "api_calls")
	require.NoError(t, err)
	assert.False(t, over, "uncapped metrics are never over quota")
}

func TestUsagePercent(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	manager := billing.NewManager(store)
	ws := planWorkspace("standard")

	require.NoError(t, manager.SetUsage(ctx, ws, domain.MetricStorageMB, decimal.NewFromInt(2560)))
	percent, err := manager.UsagePercent(ctx, ws, domain.MetricStorageMB)
	require.NoError(t, err)
	require.NotNil(t, percent)
	assert.Equal(t, "25", percent.String())

	percent, err = manager.UsagePercent(ctx, ws, "api_calls")
	require.NoError(t, err)
	assert.Nil(t, percent)
}

func TestReport(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	manager := billing.NewManager(store)
	ws := planWorkspace("free")

	require.NoError(t, manager.SetUsage(ctx, ws, domain.MetricProjects, decimal.NewFromInt(5)))
	require.NoError(t, manager.SetUsage(ctx, ws, "api_calls", decimal.NewFromInt(1200)))

	report, err := manager.Report(ctx, ws)
	require.NoError(t, err)
	require.Len(t, report, 3)

	assert.Equal(t, "api_calls", report[0].Metric)
	assert.Equal(t, "1200", report[0].Used.String())
	assert.Nil(t, report[0].Limit, "counters without a quota report unlimited")
	assert.False(t, report[0].OverQuota)

	assert.Equal(t, domain.MetricProjects, report[1].Metric)
	assert.Equal(t, "5", report[1].Used.String())
	require.NotNil(t, report[1].Limit)
	assert.Equal(t, "3", report[1].Limit.String())
	assert.True(t, report[1].OverQuota)
	require.NotNil(t, report[1].Remaining)
	assert.True(t, report[1].Remaining.IsZero())
	require.NotNil(t, report[1].Percent)
	assert.Equal(t, "166.67", report[1].Percent.String())

	assert.Equal(t, domain.MetricStorageMB, report[2].Metric)
	assert.True(t, report[2].Used.IsZero())
	require.NotNil(t, report[2].Limit)
	assert.Equal(t, "512", report[2].Limit.String())
	require.NotNil(t, report[2].Percent)
	assert.True(t, report[2].Percent.IsZero())

	t.Run("unknown plan falls back to the default quotas", func(t *testing.T) {
		report, err := manager.Report(ctx, planWorkspace("enterprise-platinum"))
		require.NoError(t, err)
		require.Len(t, report, 2)
		assert.Equal(t, domain.MetricProjects, report[0].Metric)
	})
}
