package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/altinukshini/batch-tui/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "batch-tui.log")
	log, closer, err := New(config.LogConfig{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info().Int64("job_instance_id", 42).Msg("refresh")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"job_instance_id":42`) {
		t.Errorf("log file missing field: %s", data)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New(config.LogConfig{Level: "loud", File: filepath.Join(t.TempDir(), "x.log")})
	if err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestRetryLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	rl := RetryLogger{Log: NewWithWriter(&buf, zerolog.WarnLevel, false)}

	rl.Debug("retrying", "attempt", 1)
	rl.Info("request", "url", "http://x")
	if buf.Len() != 0 {
		t.Fatalf("debug/info should be filtered at warn level, got %q", buf.String())
	}

	rl.Warn("giving up", "attempts", 3)
	if !strings.Contains(buf.String(), `"attempts":3`) {
		t.Errorf("warn output = %q", buf.String())
	}
}
