package models

// CurrencySnapshot is the process-wide cached view of exchange rates,
// refreshed by a background job. Stale reads are acceptable.
type CurrencySnapshot struct {
	KZT        float64 `json:"KZT"`
	USD        float64 `json:"USD"`
	UpdateTime int64   `json:"update_time"`
}
