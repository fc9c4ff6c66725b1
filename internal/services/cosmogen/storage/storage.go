// Package storage defines persistence contracts for the cosmogen run ledger.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/cosmogen/internal/services/cosmogen/domain"
)

var (
	// ErrNotFound indicates a requested run record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a run with the same ID was already recorded.
	ErrAlreadyExists = errors.New("record already exists")
)

// Run records one completed generate-and-write pass.
type Run struct {
	ID             string
	Seed           int64
	Preset         string
	OutputPath     string
	TargetSize     int64
	PayloadLength  int64
	AllocatedBytes int64
	Sparse         bool
	Checksum       uint64
	Census         domain.Census
	CreatedAt      time.Time
}

// RunStore persists run records.
type RunStore interface {
	RecordRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (Run, error)
	// ListRuns returns up to limit runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}
