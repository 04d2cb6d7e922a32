package forecast

// Step is one timestep of a feature window: normalized close and
// normalized sentiment.
type Step struct {
	Close     float64
	Sentiment float64
}

// Window is a fixed-length look-back slice of feature steps, one
// training or inference example.
type Window []Step

// DefaultLookBack is the number of trading sessions in one window.
const DefaultLookBack = 60

// BuildWindows slides a look-back window over the normalized series and
// pairs each window with the normalized close of the point that follows
// it. A series of length N yields max(0, N-lookBack) windows.
func BuildWindows(closes, sentiments []float64, n *Normalizer, lookBack int) ([]Window, []float64) {
	if lookBack < 1 || len(closes) <= lookBack {
		return nil, nil
	}

	scaledClose := make([]float64, len(closes))
	scaledSent := make([]float64, len(closes))
	for i := range closes {
		scaledClose[i] = n.ScaleClose(closes[i])
		scaledSent[i] = n.ScaleSentiment(sentiments[i])
	}

	count := len(closes) - lookBack
	windows := make([]Window, 0, count)
	targets := make([]float64, 0, count)
	for i := lookBack; i < len(closes); i++ {
		w := make(Window, lookBack)
		for j := 0; j < lookBack; j++ {
			w[j] = Step{Close: scaledClose[i-lookBack+j], Sentiment: scaledSent[i-lookBack+j]}
		}
		windows = append(windows, w)
		targets = append(targets, scaledClose[i])
	}
	return windows, targets
}

// LastWindow builds the inference window from the final lookBack points
// of the series.
func LastWindow(closes, sentiments []float64, n *Normalizer, lookBack int) Window {
	if lookBack < 1 || len(closes) < lookBack {
		return nil
	}
	start := len(closes) - lookBack
	w := make(Window, lookBack)
	for j := 0; j < lookBack; j++ {
		w[j] = Step{
			Close:     n.ScaleClose(closes[start+j]),
			Sentiment: n.ScaleSentiment(sentiments[start+j]),
		}
	}
	return w
}
