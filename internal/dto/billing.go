package dto

import (
	"github.com/bhhaskin/workspaces_app/internal/billing"
	"github.com/bhhaskin/workspaces_app/internal/core/domain"
)

// BillingQuoteResponse is the computed monthly charge for a workspace.
// Amounts are fixed-point strings to keep precision across clients.
type BillingQuoteResponse struct {
	WorkspaceID      string `json:"workspaceID"`
	PlanSlug         string `json:"planSlug"`
	ActiveSeats      int    `json:"activeSeats"`
	BillableSeats    int    `json:"billableSeats"`
	BaseCharge       string `json:"baseCharge"`
	SeatCharge       string `json:"seatCharge"`
	Total            string `json:"total"`
	BillingContactID string `json:"billingContactID"`
}

// ToBillingQuoteResponse converts domain.BillingQuote to DTO.
func ToBillingQuoteResponse(q *domain.BillingQuote) BillingQuoteResponse {
	return BillingQuoteResponse{
		WorkspaceID:      q.WorkspaceID,
		PlanSlug:         q.PlanSlug,
		ActiveSeats:      q.ActiveSeats,
		BillableSeats:    q.BillableSeats,
		BaseCharge:       q.BaseCharge.StringFixed(2),
		SeatCharge:       q.SeatCharge.StringFixed(2),
		Total:            q.Total.StringFixed(2),
		BillingContactID: q.BillingContactID,
	}
}

// MetricUsageResponse is the state of one usage metric against its plan
// quota. Limit, remaining and percent are omitted for unlimited metrics.
type MetricUsageResponse struct {
	Metric    string  `json:"metric"`
	Used      string  `json:"used"`
	Limit     *string `json:"limit,omitempty"`
	Remaining *string `json:"remaining,omitempty"`
	Percent   *string `json:"percent,omitempty"`
	OverQuota bool    `json:"overQuota"`
}

// UsageReportResponse wraps the quota metrics of one workspace.
type UsageReportResponse struct {
	WorkspaceID string                `json:"workspaceID"`
	Metrics     []MetricUsageResponse `json:"metrics"`
}

// ToUsageReportResponse converts a billing usage report to DTO.
func ToUsageReportResponse(workspaceID string, report []billing.MetricUsage) UsageReportResponse {
	metrics := make([]MetricUsageResponse, len(report))
	for i, m := range report {
		entry := MetricUsageResponse{
			Metric:    m.Metric,
			Used:      m.Used.String(),
			OverQuota: m.OverQuota,
		}
		if m.Limit != nil {
			limit := m.Limit.String()
			entry.Limit = &limit
		}
		if m.Remaining != nil {
			remaining := m.Remaining.String()
			entry.Remaining = &remaining
		}
		if m.Percent != nil {
			percent := m.Percent.StringFixed(2)
			entry.Percent = &percent
		}
		metrics[i] = entry
	}
	return UsageReportResponse{WorkspaceID: workspaceID, Metrics: metrics}
}
