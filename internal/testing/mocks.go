package testing

import (
	"context"
	"sync"

	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/journal"
)

// MockRecorder is an in-memory journal.Recorder for handler tests
type MockRecorder struct {
	mu   sync.Mutex
	runs []journal.Run
}

// NewMockRecorder creates a new mock recorder
func NewMockRecorder() *MockRecorder {
	return &MockRecorder{}
}

// Record stores run in memory
func (m *MockRecorder) Record(ctx context.Context, run journal.Run) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
}

// Runs returns a copy of every recorded run
func (m *MockRecorder) Runs() []journal.Run {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]journal.Run, len(m.runs))
	copy(out, m.runs)
	return out
}
