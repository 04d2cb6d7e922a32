package forecast

// Normalizer holds min-max ranges fit jointly on the close and sentiment
// columns of one price series. It is owned by the forecaster run that fit
// it and must not be reused across series without refitting.
type Normalizer struct {
	minClose, maxClose float64
	minSent, maxSent   float64
}

// FitNormalizer computes per-column min/max over the full series.
func FitNormalizer(closes, sentiments []float64) *Normalizer {
	n := &Normalizer{}
	n.minClose, n.maxClose = columnRange(closes)
	n.minSent, n.maxSent = columnRange(sentiments)
	return n
}

func columnRange(values []float64) (min, max float64) {
	if len(values) == 0 {
		return 0, 0
	}
	min, max = values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// ScaleClose maps a close price into [0,1]. A degenerate column
// (max == min) scales to 0.
func (n *Normalizer) ScaleClose(v float64) float64 {
	return scale(v, n.minClose, n.maxClose)
}

// ScaleSentiment maps a sentiment value into [0,1].
func (n *Normalizer) ScaleSentiment(v float64) float64 {
	return scale(v, n.minSent, n.maxSent)
}

// InverseClose maps a scaled close back to price units.
func (n *Normalizer) InverseClose(v float64) float64 {
	if n.maxClose == n.minClose {
		return n.minClose
	}
	return v*(n.maxClose-n.minClose) + n.minClose
}

func scale(v, min, max float64) float64 {
	if max == min {
		return 0
	}
	return (v - min) / (max - min)
}
