package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/database"
	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/journal"
	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/utils"
)

// SystemHandlers contains system-related HTTP handlers
type SystemHandlers struct {
	log       zerolog.Logger
	journal   JournalStore
	journalDB *database.DB
	startedAt time.Time
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, store JournalStore, journalDB *database.DB) *SystemHandlers {
	return &SystemHandlers{
		log:       log.With().Str("handler", "system").Logger(),
		journal:   store,
		journalDB: journalDB,
		startedAt: time.Now(),
	}
}

// PerformanceResponse is the body of GET /performance
type PerformanceResponse struct {
	Time    string `json:"time"`
	Memory  string `json:"memory"`
	Threads int32  `json:"threads"`
}

// HostMemory summarises host memory usage
type HostMemory struct {
	TotalMB     float64 `json:"total_mb"`
	UsedMB      float64 `json:"used_mb"`
	UsedPercent float64 `json:"used_percent"`
}

// SystemStatsResponse is the body of GET /system/stats
type SystemStatsResponse struct {
	UptimeSeconds  float64         `json:"uptime_seconds"`
	JournalEnabled bool            `json:"journal_enabled"`
	Journal        *journal.Stats  `json:"journal,omitempty"`
	Database       *database.Stats `json:"database,omitempty"`
	Memory         *HostMemory     `json:"memory,omitempty"`
	LastChecked    string          `json:"last_checked"`
}

// HandlePerformance reports elapsed request time, process RSS and OS thread count
func (h *SystemHandlers) HandlePerformance(w http.ResponseWriter, r *http.Request) {
	start, ok := requestStart(r.Context())
	if !ok {
		start = time.Now()
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to inspect current process")
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to inspect process"})
		return
	}

	var rssMB float64
	if info, err := proc.MemoryInfo(); err != nil {
		h.log.Warn().Err(err).Msg("Failed to get process memory")
	} else {
		rssMB = float64(info.RSS) / 1024 / 1024
	}

	threads, err := proc.NumThreads()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get thread count")
	}

	h.writeJSON(w, http.StatusOK, PerformanceResponse{
		Time:    utils.FormatElapsed(time.Since(start)),
		Memory:  fmt.Sprintf("%.2f MB", rssMB),
		Threads: threads,
	})
}

// HandleSystemStats reports journal statistics and host memory usage
func (h *SystemHandlers) HandleSystemStats(w http.ResponseWriter, r *http.Request) {
	response := SystemStatsResponse{
		UptimeSeconds:  time.Since(h.startedAt).Seconds(),
		JournalEnabled: h.journal != nil,
		LastChecked:    time.Now().UTC().Format(time.RFC3339),
	}

	if h.journal != nil {
		stats, err := h.journal.Stats(r.Context())
		if err != nil {
			h.log.Error().Err(err).Msg("Failed to get journal stats")
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get journal stats"})
			return
		}
		response.Journal = stats
	}

	if h.journalDB != nil {
		stats, err := h.journalDB.GetStats()
		if err != nil {
			h.log.Warn().Err(err).Msg("Failed to get database stats")
		} else {
			response.Database = stats
		}
	}

	if memStat, err := mem.VirtualMemory(); err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
	} else {
		response.Memory = &HostMemory{
			TotalMB:     float64(memStat.Total) / 1024 / 1024,
			UsedMB:      float64(memStat.Used) / 1024 / 1024,
			UsedPercent: memStat.UsedPercent,
		}
	}

	h.writeJSON(w, http.StatusOK, response)
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
