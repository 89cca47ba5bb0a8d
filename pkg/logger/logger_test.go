package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, parseLevel("warn"))
	require.Equal(t, slog.LevelError, parseLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestOutputDefaultsToStdout(t *testing.T) {
	require.Equal(t, os.Stdout, output(" "))
}

func TestOutputRotatesIntoFile(t *testing.T) {
	t.Setenv("LOG_FILE_MAX_SIZE_MB", "7")
	path := filepath.Join(t.TempDir(), "faq.log")

	w := output(path)
	_, err := w.Write([]byte("{\"msg\":\"hello\"}\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "hello")
	require.Equal(t, 7, envInt("LOG_FILE_MAX_SIZE_MB", 50))
	require.Equal(t, 5, envInt("LOG_FILE_MAX_BACKUPS", 5))
}
