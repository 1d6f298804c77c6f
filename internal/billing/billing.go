// Package billing is an optional quota extension over the workspace core.
// It is wired in at composition time when the storage layer implements
// UsageStore; the core behaves identically without it.
package billing

import (
	"context"
	"sort"

	"github.com/bhhaskin/workspaces_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UsageStore persists per-workspace usage counters. The pgsql workspace
// repository implements it; detection happens by interface assertion when
// the service container is built.
type UsageStore interface {
	// GetUsage retrieves all usage counters of the workspace, keyed by metric.
	GetUsage(ctx context.Context, workspaceID string) (map[string]decimal.Decimal, error)

	// SetUsage writes one counter. Values never go below zero.
	SetUsage(ctx context.Context, workspaceID, metric string, value decimal.Decimal) error
}

// MetricUsage is the computed state of one usage metric against its plan
// quota. Limit is nil when the plan leaves the metric unlimited.
type MetricUsage struct {
	Metric    string
	Used      decimal.Decimal
	Limit     *decimal.Decimal
	Remaining *decimal.Decimal
	Percent   *decimal.Decimal
	OverQuota bool
}

// Manager applies plan quotas to stored usage counters.
type Manager struct {
	store UsageStore
}

// NewManager creates a quota manager over the given store.
func NewManager(store UsageStore) *Manager {
	return &Manager{store: store}
}

func (m *Manager) usage(ctx context.Context, workspaceID, metric string) (decimal.Decimal, error) {
	counters, err := m.store.GetUsage(ctx, workspaceID)
	if err != nil {
		return decimal.Zero, err
	}
	return counters[metric], nil
}

// RecordUsage increments the metric by amount and returns the new value.
func (m *Manager) RecordUsage(ctx context.Context, workspace *domain.Workspace, metric string, amount decimal.Decimal) (decimal.Decimal, error) {
	current, err := m.usage(ctx, workspace.WorkspaceID, metric)
	if err != nil {
		return decimal.Zero, err
	}
	next := current.Add(amount)
	if next.IsNegative() {
		next = decimal.Zero
	}
	if err := m.store.SetUsage(ctx, workspace.WorkspaceID, metric, next); err != nil {
		return decimal.Zero, err
	}
	return next, nil
}

// DecrementUsage lowers the metric by amount, flooring at zero.
func (m *Manager) DecrementUsage(ctx context.Context, workspace *domain.Workspace, metric string, amount decimal.Decimal) (decimal.Decimal, error) {
	return m.RecordUsage(ctx, workspace, metric, amount.Neg())
}

// SetUsage overwrites the metric's counter.
func (m *Manager) SetUsage(ctx context.Context, workspace *domain.Workspace, metric string, value decimal.Decimal) error {
	if value.IsNegative() {
		value = decimal.Zero
	}
	return m.store.SetUsage(ctx, workspace.WorkspaceID, metric, value)
}

// ResetUsage zeroes the metric's counter.
func (m *Manager) ResetUsage(ctx context.Context, workspace *domain.Workspace, metric string) error {
	return m.store.SetUsage(ctx, workspace.WorkspaceID, metric, decimal.Zero)
}

// Remaining returns how much of the quota is left, nil when the metric is
// unlimited under the workspace's plan. Never negative.
func (m *Manager) Remaining(ctx context.Context, workspace *domain.Workspace, metric string) (*decimal.Decimal, error) {
	plan, _ := domain.PlanForMeta(workspace.Meta)
	limit, capped := plan.Quotas[metric]
	if !capped {
		return nil, nil
	}
	used, err := m.usage(ctx, workspace.WorkspaceID, metric)
	if err != nil {
		return nil, err
	}
	remaining := limit.Sub(used)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return &remaining, nil
}

// OverQuota reports whether the metric's counter exceeds the plan quota.
// Unlimited metrics are never over quota.
func (m *Manager) OverQuota(ctx context.Context, workspace *domain.Workspace, metric string) (bool, error) {
	plan, _ := domain.PlanForMeta(workspace.Meta)
	limit, capped := plan.Quotas[metric]
	if !capped {
		return false, nil
	}
	used, err := m.usage(ctx, workspace.WorkspaceID, metric)
	if err != nil {
		return false, err
	}
	return used.GreaterThan(limit), nil
}

// UsagePercent returns used/limit as a percentage rounded to two places,
// nil for unlimited metrics. A zero limit with any usage reads as 100.
func (m *Manager) UsagePercent(ctx context.Context, workspace *domain.Workspace, metric string) (*decimal.Decimal, error) {
	plan, _ := domain.PlanForMeta(workspace.Meta)
	limit, capped := plan.Quotas[metric]
	if !capped {
		return nil, nil
	}
	used, err := m.usage(ctx, workspace.WorkspaceID, metric)
	if err != nil {
		return nil, err
	}
	percent := percentOf(used, limit)
	return &percent, nil
}

func percentOf(used, limit decimal.Decimal) decimal.Decimal {
	if limit.IsZero() {
		if used.IsZero() {
			return decimal.Zero
		}
		return decimal.NewFromInt(100)
	}
	return used.Div(limit).Mul(decimal.NewFromInt(100)).Round(2)
}

// Report computes the state of every metric the plan caps plus any metric
// with a stored counter, sorted by metric name.
func (m *Manager) Report(ctx context.Context, workspace *domain.Workspace) ([]MetricUsage, error) {
	plan, _ := domain.PlanForMeta(workspace.Meta)
	counters, err := m.store.GetUsage(ctx, workspace.WorkspaceID)
	if err != nil {
		return nil, err
	}

	metrics := map[string]struct{}{}
	for metric := range plan.Quotas {
		metrics[metric] = struct{}{}
	}
	for metric := range counters {
		metrics[metric] = struct{}{}
	}

	report := make([]MetricUsage, 0, len(metrics))
	for metric := range metrics {
		used := counters[metric]
		entry := MetricUsage{Metric: metric, Used: used}
		if limit, capped := plan.Quotas[metric]; capped {
			l := limit
			entry.Limit = &l
			remaining := limit.Sub(used)
			if remaining.IsNegative() {
				remaining = decimal.Zero
			}
			entry.Remaining = &remaining
			percent := percentOf(used, limit)
			entry.Percent = &percent
			entry.OverQuota = used.GreaterThan(limit)
		}
		report = append(report, entry)
	}
	sort.Slice(report, func(i, j int) bool { return report[i].Metric < report[j].Metric })
	return report, nil
}
