package scheduler

import (
	"fmt"

	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/database"
	"github.com/rs/zerolog"
)

// walFrameThreshold is the WAL size, in frames, above which the file is truncated
const walFrameThreshold = 1000

// JournalCheckpointJob keeps the journal WAL file small
type JournalCheckpointJob struct {
	db  *database.DB
	log zerolog.Logger
}

// NewJournalCheckpointJob creates a new JournalCheckpointJob
func NewJournalCheckpointJob(db *database.DB, log zerolog.Logger) *JournalCheckpointJob {
	return &JournalCheckpointJob{
		db:  db,
		log: log.With().Str("job", "journal_wal_checkpoint").Logger(),
	}
}

// Name returns the job name
func (j *JournalCheckpointJob) Name() string {
	return "journal_wal_checkpoint"
}

// Run checkpoints the WAL and truncates it when it has grown large
func (j *JournalCheckpointJob) Run() error {
	// PRAGMA wal_checkpoint returns: busy, log, checkpointed
	var busy, frames, checkpointed int
	err := j.db.Conn().QueryRow("PRAGMA wal_checkpoint(PASSIVE)").Scan(&busy, &frames, &checkpointed)
	if err != nil {
		return fmt.Errorf("failed to check WAL checkpoint for %s: %w", j.db.Name(), err)
	}

	if frames <= walFrameThreshold {
		j.log.Debug().
			Int("wal_frames", frames).
			Int("checkpointed", checkpointed).
			Msg("WAL checkpoint status OK")
		return nil
	}

	j.log.Info().
		Int("wal_frames", frames).
		Msg("WAL file is large, truncating")
	return j.db.WALCheckpoint("TRUNCATE")
}
