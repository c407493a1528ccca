package utils

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00.000"},
		{12 * time.Millisecond, "00.012"},
		{1500 * time.Millisecond, "01.500"},
		{59*time.Second + 999*time.Millisecond, "59.999"},
		{time.Minute, "00:01:00.000"},
		{time.Hour + 2*time.Minute + 3*time.Second + 45*time.Millisecond, "01:02:03.045"},
		{-time.Second, "00.000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatElapsed(tt.in))
		})
	}
}

func TestTimer(t *testing.T) {
	timer := NewTimer("test", zerolog.Nop())
	time.Sleep(2 * time.Millisecond)

	assert.GreaterOrEqual(t, timer.Elapsed(), 2*time.Millisecond)
	assert.GreaterOrEqual(t, timer.Stop(), 2*time.Millisecond)

	assert.NotPanics(t, func() {
		OperationTimer("op", zerolog.Nop())()
	})
}
