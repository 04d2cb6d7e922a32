package forecast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// stubRegressor records what it was trained on and returns a fixed
// scaled prediction.
type stubRegressor struct {
	windows    []Window
	targets    []float64
	prediction float64
}

func (s *stubRegressor) Fit(windows []Window, targets []float64) error {
	s.windows = windows
	s.targets = targets
	return nil
}

func (s *stubRegressor) Predict(Window) (float64, error) {
	return s.prediction, nil
}

func TestForecasterRun(t *testing.T) {
	closes := make([]float64, 70)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	t.Run("predicts in price units", func(t *testing.T) {
		stub := &stubRegressor{prediction: 0.5}
		f := NewForecaster(func(int) Regressor { return stub })

		result, err := f.Run(closes, 0.3, false, 60)

		require.NoError(t, err)
		require.Equal(t, closes[69], result.LastPrice)
		// 0.5 scaled back over the [100, 169] close range.
		require.InDelta(t, 134.5, result.PredictedPrice, 1e-9)
		require.Equal(t, 0.3, result.SentimentUsed)
		require.False(t, result.SentimentDefaulted)
	})

	t.Run("broadcasts one sentiment across the history", func(t *testing.T) {
		stub := &stubRegressor{prediction: 0.5}
		f := NewForecaster(func(int) Regressor { return stub })

		_, err := f.Run(closes, 0.3, false, 60)

		require.NoError(t, err)
		require.Len(t, stub.windows, 10)
		// A constant sentiment column is degenerate and scales to zero
		// in every step.
		for _, w := range stub.windows {
			for _, step := range w {
				require.Equal(t, 0.0, step.Sentiment)
			}
		}
	})

	t.Run("carries the defaulted flag through", func(t *testing.T) {
		stub := &stubRegressor{prediction: 0.5}
		f := NewForecaster(func(int) Regressor { return stub })

		result, err := f.Run(closes, 0, true, 60)

		require.NoError(t, err)
		require.True(t, result.SentimentDefaulted)
		require.Equal(t, 0.0, result.SentimentUsed)
	})

	t.Run("series not longer than lookBack", func(t *testing.T) {
		f := NewForecaster(func(int) Regressor { return &stubRegressor{} })

		result, err := f.Run(closes[:60], 0, false, 60)

		require.ErrorIs(t, err, ErrInsufficientData)
		require.Nil(t, result)
	})

	t.Run("non-positive lookBack rejected", func(t *testing.T) {
		f := NewForecaster(func(int) Regressor { return &stubRegressor{} })

		result, err := f.Run(closes, 0, false, 0)

		require.Error(t, err)
		require.Nil(t, result)
	})
}
