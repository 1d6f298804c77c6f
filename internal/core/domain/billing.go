package domain

import "github.com/shopspring/decimal"

// Plan describes a subscription tier. Prices are monthly and expressed in
// the account currency; decimal avoids float drift in charge math.
type Plan struct {
	Slug          string          `json:"slug"`
	Name          string          `json:"name"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	PricePerSeat  decimal.Decimal `json:"pricePerSeat"`
	IncludedSeats int             `json:"includedSeats"`

	// Quotas caps named usage metrics for the tier. A metric without an
	// entry is unlimited.
	Quotas map[string]decimal.Decimal `json:"quotas"`
}

// builtinPlans are the tiers a workspace may select via its metadata. The
// owner always occupies a seat.
// Usage metrics capped by plan quotas.
const (
	MetricProjects  = "projects"
	MetricStorageMB = "storage_mb"
)

var builtinPlans = map[string]Plan{
	"free": {
		Slug:          "free",
		Name:          "Free",
		BasePrice:     decimal.Zero,
		PricePerSeat:  decimal.Zero,
		IncludedSeats: 3,
		Quotas: map[string]decimal.Decimal{
			MetricProjects:  decimal.NewFromInt(3),
			MetricStorageMB: decimal.NewFromInt(512),
		},
	},
	"standard": {
		Slug:          "standard",
		Name:          "Standard",
		BasePrice:     decimal.NewFromInt(12),
		PricePerSeat:  decimal.RequireFromString("4.50"),
		IncludedSeats: 5,
		Quotas: map[string]decimal.Decimal{
			MetricProjects:  decimal.NewFromInt(25),
			MetricStorageMB: decimal.NewFromInt(10240),
		},
	},
	"business": {
		Slug:          "business",
		Name:          "Business",
		BasePrice:     decimal.NewFromInt(49),
		PricePerSeat:  decimal.RequireFromString("3.25"),
		IncludedSeats: 15,
		Quotas: map[string]decimal.Decimal{
			MetricProjects:  decimal.NewFromInt(250),
			MetricStorageMB: decimal.NewFromInt(102400),
		},
	},
}

// DefaultPlanSlug is applied when a workspace has no plan in its metadata.
const DefaultPlanSlug = "free"

// PlanBySlug returns the builtin plan for the slug.
func PlanBySlug(slug string) (Plan, bool) {
	p, ok := builtinPlans[slug]
	return p, ok
}

// PlanForMeta resolves the plan from a workspace's metadata. The second
// return reports whether the metadata named a known plan; the default tier
// is returned otherwise.
func PlanForMeta(meta map[string]any) (Plan, bool) {
	slug := DefaultPlanSlug
	if raw, ok := meta["plan"]; ok {
		if str, ok := raw.(string); ok && str != "" {
			slug = str
		}
	}
	if plan, ok := PlanBySlug(slug); ok {
		return plan, true
	}
	plan, _ := PlanBySlug(DefaultPlanSlug)
	return plan, false
}

// BillingQuote is the computed monthly charge for a workspace at its current
// seat count.
type BillingQuote struct {
	WorkspaceID      string          `json:"workspaceID"`
	PlanSlug         string          `json:"planSlug"`
	ActiveSeats      int             `json:"activeSeats"`
	BillableSeats    int             `json:"billableSeats"`
	BaseCharge       decimal.Decimal `json:"baseCharge"`
	SeatCharge       decimal.Decimal `json:"seatCharge"`
	Total            decimal.Decimal `json:"total"`
	BillingContactID string          `json:"billingContactID"`
}

// QuoteForPlan computes the monthly charge for the given active seat count.
// Seats up to the plan's included allowance are free; the rest are charged
// per seat.
func QuoteForPlan(plan Plan, activeSeats int) (billableSeats int, seatCharge, total decimal.Decimal) {
	billableSeats = activeSeats - plan.IncludedSeats
	if billableSeats < 0 {
		billableSeats = 0
	}
	seatCharge = plan.PricePerSeat.Mul(decimal.NewFromInt(int64(billableSeats))).Round(2)
	total = plan.BasePrice.Add(seatCharge).Round(2)
	return billableSeats, seatCharge, total
}
