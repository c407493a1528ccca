// Package journal records summaries of calculation runs. Only aggregates are
// kept: counts, totals and per-window results, never the transactions.
package journal

import (
	"errors"
	"time"
)

// ErrRunNotFound is returned when a run id does not exist.
var ErrRunNotFound = errors.New("run not found")

// Endpoints recorded in the journal.
const (
	EndpointFilter       = "transactions:filter"
	EndpointReturnsNPS   = "returns:nps"
	EndpointReturnsIndex = "returns:index"
)

// Run is the summary of one calculation.
type Run struct {
	ID               string         `json:"id"`
	Endpoint         string         `json:"endpoint"`
	Product          string         `json:"product,omitempty"`
	WindowCount      int            `json:"window_count"`
	TransactionCount int            `json:"transaction_count"`
	TotalAmount      float64        `json:"total_amount"`
	TotalCeiling     float64        `json:"total_ceiling"`
	Windows          []WindowResult `json:"windows"`
	DurationMicros   int64          `json:"duration_us"`
	CreatedAt        time.Time      `json:"created_at"`
}

// WindowResult is the outcome for one reporting window. Value and TaxBenefit
// are only set for projected runs.
type WindowResult struct {
	Start      string   `msgpack:"start" json:"start"`
	End        string   `msgpack:"end" json:"end"`
	Amount     float64  `msgpack:"amount" json:"amount"`
	Value      *float64 `msgpack:"value,omitempty" json:"value,omitempty"`
	TaxBenefit *float64 `msgpack:"tax_benefit,omitempty" json:"tax_benefit,omitempty"`
}

// Stats summarizes the journal.
type Stats struct {
	TotalRuns       int            `json:"total_runs"`
	RunsByEndpoint  map[string]int `json:"runs_by_endpoint"`
	SampleSize      int            `json:"sample_size"`
	MeanDurationUs  float64        `json:"mean_duration_us"`
	MeanTotalAmount float64        `json:"mean_total_amount"`
	OldestRunAt     *time.Time     `json:"oldest_run_at,omitempty"`
	NewestRunAt     *time.Time     `json:"newest_run_at,omitempty"`
}
