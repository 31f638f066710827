package logging

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/devopsnextgenx/mcp-crypto-server/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupWritesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "logs", "server.log")

	logger, err := Setup(config.LoggingConfig{
		Level:       "debug",
		Format:      "text",
		File:        file,
		MaxFileSize: "10MB",
		BackupCount: 2,
	})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	logger.Info("hello from test", "key", "value")

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log file missing record: %s", data)
	}
}

func TestRotate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.log")

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte(fmt.Sprintf("gen %d", i)), 0o644); err != nil {
			t.Fatal(err)
		}
		rotate(path, 2)
	}

	// gen 2 -> .1, gen 1 -> .2, gen 0 dropped
	b1, err := os.ReadFile(path + ".1")
	if err != nil {
		t.Fatalf("missing .1: %v", err)
	}
	if string(b1) != "gen 2" {
		t.Errorf(".1 = %q, want gen 2", b1)
	}
	b2, err := os.ReadFile(path + ".2")
	if err != nil {
		t.Fatalf("missing .2: %v", err)
	}
	if string(b2) != "gen 1" {
		t.Errorf(".2 = %q, want gen 1", b2)
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Error("expected .3 to not exist")
	}
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	}}
	logger := slog.New(h)
	logger.Info("fan out")

	if !strings.Contains(a.String(), "fan out") {
		t.Error("text handler missed record")
	}
	if !strings.Contains(b.String(), "fan out") {
		t.Error("json handler missed record")
	}
	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected handler enabled at info")
	}
}
