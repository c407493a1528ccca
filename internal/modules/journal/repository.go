package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
	"gonum.org/v1/gonum/stat"
)

// statsSampleSize bounds how many recent runs feed the mean statistics.
const statsSampleSize = 1000

// Repository persists runs in the journal database.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new journal repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "journal").Logger(),
	}
}

// Insert stores run, assigning an id and creation time when missing.
func (r *Repository) Insert(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	windows, err := msgpack.Marshal(run.Windows)
	if err != nil {
		return fmt.Errorf("failed to encode windows: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, endpoint, product, window_count, transaction_count,
		 total_amount, total_ceiling, windows, duration_us, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Endpoint,
		run.Product,
		run.WindowCount,
		run.TransactionCount,
		run.TotalAmount,
		run.TotalCeiling,
		windows,
		run.DurationMicros,
		run.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	r.log.Debug().
		Str("id", run.ID).
		Str("endpoint", run.Endpoint).
		Int("windows", run.WindowCount).
		Msg("Recorded run")

	return nil
}

const selectRun = `
	SELECT id, endpoint, product, window_count, transaction_count,
	       total_amount, total_ceiling, windows, duration_us, created_at
	FROM runs`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run       Run
		windows   []byte
		createdAt int64
	)
	err := row.Scan(
		&run.ID,
		&run.Endpoint,
		&run.Product,
		&run.WindowCount,
		&run.TransactionCount,
		&run.TotalAmount,
		&run.TotalCeiling,
		&windows,
		&run.DurationMicros,
		&createdAt,
	)
	if err != nil {
		return Run{}, err
	}

	run.CreatedAt = time.UnixMilli(createdAt).UTC()
	run.Windows = []WindowResult{}
	if len(windows) > 0 {
		if err := msgpack.Unmarshal(windows, &run.Windows); err != nil {
			return Run{}, fmt.Errorf("failed to decode windows of run %s: %w", run.ID, err)
		}
	}
	return run, nil
}

// GetByID returns a single run
func (r *Repository) GetByID(ctx context.Context, id string) (*Run, error) {
	row := r.db.QueryRowContext(ctx, selectRun+" WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return &run, nil
}

// List returns up to limit runs, newest first
func (r *Repository) List(ctx context.Context, limit int) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx, selectRun+" ORDER BY created_at DESC, rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

// DeleteOlderThan removes runs created before cutoff and returns how many
// were deleted.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM runs WHERE created_at < ?", cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to delete old runs: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted runs: %w", err)
	}
	return n, nil
}

// Stats computes journal statistics. Means cover the most recent runs only.
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{RunsByEndpoint: map[string]int{}}

	rows, err := r.db.QueryContext(ctx, "SELECT endpoint, COUNT(*) FROM runs GROUP BY endpoint")
	if err != nil {
		return nil, fmt.Errorf("failed to count runs: %w", err)
	}
	for rows.Next() {
		var (
			endpoint string
			count    int
		)
		if err := rows.Scan(&endpoint, &count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan run count: %w", err)
		}
		stats.RunsByEndpoint[endpoint] = count
		stats.TotalRuns += count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run counts: %w", err)
	}

	if stats.TotalRuns == 0 {
		return stats, nil
	}

	var oldest, newest int64
	err = r.db.QueryRowContext(ctx, "SELECT MIN(created_at), MAX(created_at) FROM runs").Scan(&oldest, &newest)
	if err != nil {
		return nil, fmt.Errorf("failed to get run range: %w", err)
	}
	oldestAt := time.UnixMilli(oldest).UTC()
	newestAt := time.UnixMilli(newest).UTC()
	stats.OldestRunAt = &oldestAt
	stats.NewestRunAt = &newestAt

	sample, err := r.db.QueryContext(ctx,
		"SELECT duration_us, total_amount FROM runs ORDER BY created_at DESC LIMIT ?", statsSampleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to sample runs: %w", err)
	}
	defer sample.Close()

	var durations, amounts []float64
	for sample.Next() {
		var (
			duration int64
			amount   float64
		)
		if err := sample.Scan(&duration, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan run sample: %w", err)
		}
		durations = append(durations, float64(duration))
		amounts = append(amounts, amount)
	}
	if err := sample.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run sample: %w", err)
	}

	stats.SampleSize = len(durations)
	if stats.SampleSize > 0 {
		stats.MeanDurationUs = stat.Mean(durations, nil)
		stats.MeanTotalAmount = stat.Mean(amounts, nil)
	}
	return stats, nil
}
