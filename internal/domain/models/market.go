package models

import "time"

// Currency is the quoting unit of a market signal.
type Currency string

const (
	CurrencyTHB     Currency = "THB"
	CurrencyUSD     Currency = "USD"
	CurrencyPercent Currency = "PERCENT"
)

// MarketSignal is a single observed market quote used as valuation input.
type MarketSignal struct {
	Symbol        string
	Name          string
	Price         float64
	Change        float64
	ChangePercent float64
	Currency      Currency
	ObservedAt    time.Time
}

// SignalSnapshot is the set of signals visible at one point in time.
type SignalSnapshot []MarketSignal

// ChangePercent returns the daily change for a symbol and whether it was found.
func (s SignalSnapshot) ChangePercent(symbol string) (float64, bool) {
	for i := range s {
		if s[i].Symbol == symbol {
			return s[i].ChangePercent, true
		}
	}
	return 0, false
}

// Get returns the signal for a symbol and whether it was found.
func (s SignalSnapshot) Get(symbol string) (MarketSignal, bool) {
	for i := range s {
		if s[i].Symbol == symbol {
			return s[i], true
		}
	}
	return MarketSignal{}, false
}
