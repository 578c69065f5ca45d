// Package planlog persists a summary record per planning run. Two backends
// exist: an append-only JSONL file and a SQLite database.
package planlog

import (
	"context"
	"time"
)

// Record captures one completed planning run.
type Record struct {
	RunID          string    `json:"run_id"`
	Timestamp      time.Time `json:"timestamp"`
	DurationDays   int       `json:"duration_days"`
	CompletionDate time.Time `json:"completion_date"`
	CriticalPath   []int     `json:"critical_path"`
	TotalCost      float64   `json:"total_cost"`
	MitigationCost float64   `json:"mitigation_cost"`
	NetBenefit     float64   `json:"net_benefit"`
}

// Query defines filters for retrieving records.
type Query struct {
	Start time.Time
	End   time.Time
	RunID string
}

func (q Query) matches(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.RunID != "" && r.RunID != q.RunID {
		return false
	}
	return true
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}
