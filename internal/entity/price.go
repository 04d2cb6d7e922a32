package entity

import (
	"fmt"
	"time"
)

// PricePoint is a single daily OHLCV bar. Immutable once fetched.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceSeries is an ordered daily price history for one symbol.
// Invariant: strictly increasing dates, no duplicates.
type PriceSeries struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
}

// Len returns the number of points in the series.
func (s *PriceSeries) Len() int {
	return len(s.Points)
}

// Closes returns the closing prices in chronological order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}

// LastClose returns the most recent closing price.
func (s *PriceSeries) LastClose() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[len(s.Points)-1].Close
}

// Validate checks the chronological-order invariant.
func (s *PriceSeries) Validate() error {
	for i := 1; i < len(s.Points); i++ {
		prev, cur := s.Points[i-1].Date, s.Points[i].Date
		if !cur.After(prev) {
			return fmt.Errorf("price series for %s is not strictly increasing at index %d (%s -> %s)",
				s.Symbol, i, prev.Format("2006-01-02"), cur.Format("2006-01-02"))
		}
	}
	return nil
}
