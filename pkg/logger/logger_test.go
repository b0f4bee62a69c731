package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]int{
		"debug":   DEBUG,
		"INFO":    INFO,
		"":        INFO,
		"warning": WARNING,
		"error":   ERROR,
		"silence": SILENCE,
	}

	for s, want := range tests {
		require.Equal(t, want, ParseLevel(s), s)
	}
}

func TestNewLogger_Silence(t *testing.T) {
	l := NewLogger(SILENCE)
	l.Errorf("not printed %d", 1)
	require.NoError(t, l.Sync())
}
