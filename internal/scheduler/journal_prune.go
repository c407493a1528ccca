package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/utils"
	"github.com/rs/zerolog"
)

const pruneTimeout = 30 * time.Second

// RunPruner deletes journal runs older than a cutoff
type RunPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// JournalPruneJob removes runs that are past the retention period
type JournalPruneJob struct {
	pruner    RunPruner
	retention time.Duration
	now       func() time.Time
	log       zerolog.Logger
}

// NewJournalPruneJob creates a new JournalPruneJob
func NewJournalPruneJob(pruner RunPruner, retention time.Duration, log zerolog.Logger) *JournalPruneJob {
	return &JournalPruneJob{
		pruner:    pruner,
		retention: retention,
		now:       time.Now,
		log:       log.With().Str("job", "journal_prune").Logger(),
	}
}

// Name returns the job name
func (j *JournalPruneJob) Name() string {
	return "journal_prune"
}

// Run executes the prune
func (j *JournalPruneJob) Run() error {
	defer utils.OperationTimer(j.Name(), j.log)()

	ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
	defer cancel()

	cutoff := j.now().UTC().Add(-j.retention)
	deleted, err := j.pruner.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune journal: %w", err)
	}

	if deleted > 0 {
		j.log.Info().
			Int64("deleted", deleted).
			Time("cutoff", cutoff).
			Msg("Pruned journal runs")
	}
	return nil
}
