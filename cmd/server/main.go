// Package main is the entry point for the auto-savings API server.
//
// Startup order:
//  1. Load configuration from the environment (.env supported)
//  2. Initialise logging
//  3. Load the return rate table
//  4. Open and migrate the calculation journal (when enabled)
//  5. Register maintenance jobs with the scheduler
//  6. Serve HTTP until SIGINT/SIGTERM, then shut down gracefully
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/config"
	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/database"
	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/journal"
	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/returns"
	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/scheduler"
	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/server"
	"github.com/ketulrudani/Self-saving-for-your-retirement/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting auto-savings API")

	rates, err := returns.LoadConfigFile(cfg.RatesFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.RatesFile).Msg("Failed to load rate table")
	}
	engine := returns.NewEngine(rates)
	log.Info().
		Float64("nps_rate", rates.NPSRate).
		Float64("index_rate", rates.IndexRate).
		Int("tax_slabs", len(rates.Slabs)).
		Msg("Projection engine configured")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srvCfg := server.Config{
		Log:            log,
		Port:           cfg.Port,
		DevMode:        cfg.DevMode,
		BasePath:       cfg.APIBasePath,
		RequestTimeout: cfg.RequestTimeout,
		Engine:         engine,
	}

	sched := scheduler.New(log)

	if cfg.Journal.Enabled {
		db, err := openJournal(cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open journal database")
		}
		defer db.Close()

		repo := journal.NewRepository(db.Conn(), log)
		srvCfg.Recorder = journal.NewRecorder(repo, log)
		srvCfg.Journal = repo
		srvCfg.JournalDB = db

		if err := sched.AddJob(cfg.Journal.PruneSchedule, scheduler.NewJournalPruneJob(repo, cfg.Journal.Retention, log)); err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule journal pruning")
		}
		if err := sched.AddJob("@daily", scheduler.NewJournalCheckpointJob(db, log)); err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule WAL checkpoint")
		}
	} else {
		log.Info().Msg("Calculation journal disabled")
	}

	srv := server.New(srvCfg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return sched.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("Server stopped")
}

func openJournal(cfg *config.Config, log zerolog.Logger) (*database.DB, error) {
	db, err := database.New(database.Config{
		Path:    cfg.DatabasePath(),
		Profile: database.ProfileCache,
		Name:    "journal",
	})
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	version, err := db.SchemaVersion(context.Background())
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read journal schema version")
	}
	log.Info().
		Str("path", db.Path()).
		Uint("schema_version", version).
		Msg("Journal database ready")

	return db, nil
}
