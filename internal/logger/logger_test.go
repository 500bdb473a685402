package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zapcore.Level
	}{
		{name: "debug", level: "debug", want: zapcore.DebugLevel},
		{name: "warn", level: "warn", want: zapcore.WarnLevel},
		{name: "unknown falls back to info", level: "loud", want: zapcore.InfoLevel},
		{name: "empty falls back to info", level: "", want: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.level)

			require.NoError(t, err)
			require.True(t, log.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				require.False(t, log.Core().Enabled(tt.want-1))
			}
		})
	}
}
