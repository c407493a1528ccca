package journal

import (
	"context"

	"github.com/rs/zerolog"
)

// Recorder records calculation runs. Implementations never fail the caller.
type Recorder interface {
	Record(ctx context.Context, run Run)
}

// RepositoryRecorder records runs into a Repository and logs failures.
type RepositoryRecorder struct {
	repo *Repository
	log  zerolog.Logger
}

// NewRecorder creates a recorder backed by repo
func NewRecorder(repo *Repository, log zerolog.Logger) *RepositoryRecorder {
	return &RepositoryRecorder{
		repo: repo,
		log:  log.With().Str("component", "journal_recorder").Logger(),
	}
}

// Record stores run. Storage errors are logged and swallowed.
func (r *RepositoryRecorder) Record(ctx context.Context, run Run) {
	if err := r.repo.Insert(ctx, &run); err != nil {
		r.log.Warn().Err(err).Str("endpoint", run.Endpoint).Msg("Failed to record run")
	}
}

// NopRecorder discards every run. Used when the journal is disabled.
type NopRecorder struct{}

// Record does nothing.
func (NopRecorder) Record(context.Context, Run) {}
