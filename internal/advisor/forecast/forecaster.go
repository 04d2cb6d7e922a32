package forecast

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned when the price series is not longer
// than the look-back window, so no training examples exist.
var ErrInsufficientData = errors.New("insufficient data for forecasting")

// Result is the output of one forecast invocation.
type Result struct {
	LastPrice          float64 `json:"last_price"`
	PredictedPrice     float64 `json:"predicted_price"`
	SentimentUsed      float64 `json:"sentiment_used"`
	SentimentDefaulted bool    `json:"sentiment_defaulted"`
}

// Forecaster trains a fresh regressor per invocation and predicts the
// next closing price. Each run owns its own normalizer and model.
type Forecaster struct {
	newRegressor func(inputSize int) Regressor
}

// NewForecaster creates a forecaster with the given regressor factory.
func NewForecaster(newRegressor func(inputSize int) Regressor) *Forecaster {
	return &Forecaster{newRegressor: newRegressor}
}

// NewDefaultForecaster uses the stacked-LSTM reference model.
func NewDefaultForecaster() *Forecaster {
	return NewForecaster(func(inputSize int) Regressor {
		return NewLSTM(DefaultLSTMConfig(), inputSize)
	})
}

// Run trains on the series and forecasts the close following its final
// point. The sentiment score is broadcast across the whole history; this
// is a documented simplification, the news providers only expose a
// current-snapshot score, not a historical series.
func (f *Forecaster) Run(closes []float64, sentiment float64, sentimentDefaulted bool, lookBack int) (*Result, error) {
	if lookBack < 1 {
		return nil, fmt.Errorf("look-back must be positive, got %d", lookBack)
	}
	if len(closes) <= lookBack {
		return nil, fmt.Errorf("%w: %d points for look-back %d", ErrInsufficientData, len(closes), lookBack)
	}

	sentiments := make([]float64, len(closes))
	for i := range sentiments {
		sentiments[i] = sentiment
	}

	normalizer := FitNormalizer(closes, sentiments)
	windows, targets := BuildWindows(closes, sentiments, normalizer, lookBack)

	model := f.newRegressor(2)
	if err := model.Fit(windows, targets); err != nil {
		return nil, fmt.Errorf("model training failed: %w", err)
	}

	last := LastWindow(closes, sentiments, normalizer, lookBack)
	scaled, err := model.Predict(last)
	if err != nil {
		return nil, fmt.Errorf("model inference failed: %w", err)
	}

	return &Result{
		LastPrice:          closes[len(closes)-1],
		PredictedPrice:     normalizer.InverseClose(scaled),
		SentimentUsed:      sentiment,
		SentimentDefaulted: sentimentDefaulted,
	}, nil
}
