package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
}

func TestPriceSeries(t *testing.T) {
	series := &PriceSeries{
		Symbol: "AAPL",
		Points: []PricePoint{
			{Date: day(1), Close: 100},
			{Date: day(2), Close: 102},
			{Date: day(3), Close: 101},
		},
	}

	t.Run("closes in order", func(t *testing.T) {
		require.Equal(t, []float64{100, 102, 101}, series.Closes())
	})

	t.Run("last close", func(t *testing.T) {
		require.Equal(t, 101.0, series.LastClose())
		empty := &PriceSeries{}
		require.Equal(t, 0.0, empty.LastClose())
	})

	t.Run("valid when dates strictly increase", func(t *testing.T) {
		require.NoError(t, series.Validate())
	})

	t.Run("duplicate dates rejected", func(t *testing.T) {
		dup := &PriceSeries{
			Symbol: "AAPL",
			Points: []PricePoint{
				{Date: day(1), Close: 100},
				{Date: day(1), Close: 101},
			},
		}
		require.Error(t, dup.Validate())
	})

	t.Run("out-of-order dates rejected", func(t *testing.T) {
		ooo := &PriceSeries{
			Symbol: "AAPL",
			Points: []PricePoint{
				{Date: day(2), Close: 100},
				{Date: day(1), Close: 101},
			},
		}
		require.Error(t, ooo.Validate())
	})
}
