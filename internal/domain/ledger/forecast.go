package ledger

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Forecast projects total ticket sales at festival start from the pace
// observed so far.
type Forecast struct {
	ObservedTotal  int64           `json:"observed_total"`
	AveragePerDay  decimal.Decimal `json:"average_per_day"`
	DaysRemaining  int             `json:"days_remaining"`
	ProjectedTotal decimal.Decimal `json:"projected_total"`
}

// ComputeForecast extrapolates the observed daily ticket counts to the
// festival start date. It returns nil when fewer than two day buckets exist
// or no start date is configured: a single data point gives no rate.
//
// Days remaining is computed against the wall-clock date truncated to whole
// days, ceiling-rounded, and never negative.
func ComputeForecast(daily []DateBucket, startsAt *time.Time, now time.Time) *Forecast {
	if len(daily) < 2 || startsAt == nil {
		return nil
	}

	var observed int64
	for _, b := range daily {
		observed += b.Quantity
	}

	average := decimal.NewFromInt(observed).Div(decimal.NewFromInt(int64(len(daily))))

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := int(math.Ceil(startsAt.Sub(today).Hours() / 24))
	if days < 0 {
		days = 0
	}

	projected := decimal.NewFromInt(observed).Add(average.Mul(decimal.NewFromInt(int64(days))))

	return &Forecast{
		ObservedTotal:  observed,
		AveragePerDay:  average,
		DaysRemaining:  days,
		ProjectedTotal: projected,
	}
}
