package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeForecast(t *testing.T) {
	now := time.Date(2026, 6, 20, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("projects observed pace to festival start", func(t *testing.T) {
		daily := []DateBucket{
			{Date: "2026-06-18", Quantity: 10},
			{Date: "2026-06-19", Quantity: 20},
		}

		f := ComputeForecast(daily, &start, now)
		require.NotNil(t, f)
		assert.Equal(t, int64(30), f.ObservedTotal)
		assert.True(t, f.AveragePerDay.Equal(dec("15")))
		assert.Equal(t, 10, f.DaysRemaining)
		assert.True(t, f.ProjectedTotal.Equal(dec("180")), "got %s", f.ProjectedTotal)
	})

	t.Run("nil with fewer than two days of data", func(t *testing.T) {
		daily := []DateBucket{{Date: "2026-06-19", Quantity: 20}}
		assert.Nil(t, ComputeForecast(daily, &start, now))
		assert.Nil(t, ComputeForecast(nil, &start, now))
	})

	t.Run("nil without a start date", func(t *testing.T) {
		daily := []DateBucket{
			{Date: "2026-06-18", Quantity: 10},
			{Date: "2026-06-19", Quantity: 20},
		}
		assert.Nil(t, ComputeForecast(daily, nil, now))
	})

	t.Run("days remaining never negative after festival start", func(t *testing.T) {
		past := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		daily := []DateBucket{
			{Date: "2026-05-30", Quantity: 10},
			{Date: "2026-05-31", Quantity: 20},
		}

		f := ComputeForecast(daily, &past, now)
		require.NotNil(t, f)
		assert.Equal(t, 0, f.DaysRemaining)
		assert.True(t, f.ProjectedTotal.Equal(dec("30")))
	})

	t.Run("partial day rounds up", func(t *testing.T) {
		startEvening := time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC)
		daily := []DateBucket{
			{Date: "2026-06-18", Quantity: 10},
			{Date: "2026-06-19", Quantity: 20},
		}

		f := ComputeForecast(daily, &startEvening, now)
		require.NotNil(t, f)
		assert.Equal(t, 1, f.DaysRemaining)
	})
}
