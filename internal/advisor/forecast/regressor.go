package forecast

// Regressor is a sequence-to-one regression model. Any implementation
// satisfying this contract can be plugged into the forecaster; the
// stacked LSTM below is the reference implementation.
type Regressor interface {
	Fit(windows []Window, targets []float64) error
	Predict(w Window) (float64, error)
}
