package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/saltaireguide/directory/internal/logging"
	"github.com/saltaireguide/directory/internal/logging/console"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
	})

	logger := logging.FetcherLogger(provider)
	ctx := logging.ContextWithFields(context.Background(), map[string]any{"request_id": "req-7"})
	logger.WithContext(ctx).Error("fetch.failed",
		"path", "/pubs/the-fox",
		"error", errors.New("connection reset"),
	)

	got := strings.TrimSpace(buf.String())
	want := `2025-06-01T09:30:00Z ERROR fetch.failed error="connection reset" logger=guide.fetcher module=guide.fetcher path=/pubs/the-fox request_id=req-7`
	if got != want {
		t.Fatalf("unexpected entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelWarn
	logger := console.NewProvider(console.Options{Writer: &buf, MinLevel: &minLevel}).GetLogger("guide.test")

	logger.Info("skipped")
	logger.Warn("kept", "dangling")

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "skipped") || !strings.Contains(out, "WARN kept field_0=dangling") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in    string
		level console.Level
		ok    bool
	}{
		{"", console.LevelInfo, true},
		{"DEBUG", console.LevelDebug, true},
		{" warning ", console.LevelWarn, true},
		{"verbose", console.LevelInfo, false},
	}
	for _, tc := range cases {
		level, ok := console.ParseLevel(tc.in)
		if level != tc.level || ok != tc.ok {
			t.Fatalf("ParseLevel(%q) = %v, %v", tc.in, level, ok)
		}
	}
}
