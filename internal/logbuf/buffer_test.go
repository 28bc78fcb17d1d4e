package logbuf

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestBufferTrimsToCapacity(t *testing.T) {
	b := NewBuffer(3)
	for i := 0; i < 5; i++ {
		b.Append(fmt.Sprintf("line %d", i))
	}
	got := b.Tail(0)
	if len(got) != 3 || got[0] != "line 2" || got[2] != "line 4" {
		t.Fatalf("tail = %v", got)
	}
}

func TestBufferTailLimits(t *testing.T) {
	b := NewBuffer(10)
	for i := 0; i < 4; i++ {
		b.Append(fmt.Sprintf("line %d", i))
	}
	if got := b.Tail(2); len(got) != 2 || got[0] != "line 2" {
		t.Errorf("Tail(2) = %v", got)
	}
	if got := b.Tail(100); len(got) != 4 {
		t.Errorf("Tail(100) = %v", got)
	}
	if got := b.Tail(-1); len(got) != 4 {
		t.Errorf("Tail(-1) = %v", got)
	}
}

func TestBufferWriteFile(t *testing.T) {
	b := NewBuffer(10)
	b.Append("first")
	b.Append("second")
	path := filepath.Join(t.TempDir(), "dashboard.log")
	if err := b.WriteFile(path); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "first\nsecond\n" {
		t.Fatalf("file = %q", data)
	}
}

func TestHandlerLineFormat(t *testing.T) {
	b := NewBuffer(10)
	logger := slog.New(NewHandler(b, slog.LevelInfo))

	logger.Info("签到完成", "account", "主账户", "count", 2)
	logger.Debug("must be filtered")

	lines := b.Tail(0)
	if len(lines) != 1 {
		t.Fatalf("lines = %v", lines)
	}
	line := lines[0]
	if !strings.Contains(line, " INFO 签到完成") {
		t.Errorf("missing level/message: %q", line)
	}
	if !strings.Contains(line, "account=主账户") || !strings.Contains(line, "count=2") {
		t.Errorf("missing attrs: %q", line)
	}
	stamp := strings.SplitN(line, " INFO", 2)[0]
	if _, err := time.Parse("2006-01-02 15:04:05", stamp); err != nil {
		t.Errorf("bad timestamp %q: %v", stamp, err)
	}
}

func TestHandlerWithAttrs(t *testing.T) {
	b := NewBuffer(10)
	logger := slog.New(NewHandler(b, slog.LevelInfo)).With("component", "web")
	logger.Warn("slow request", "path", "/api/logs")

	line := b.Tail(0)[0]
	if !strings.Contains(line, "component=web") || !strings.Contains(line, "path=/api/logs") {
		t.Fatalf("line = %q", line)
	}
}

func TestHandlerWithGroupFlattens(t *testing.T) {
	b := NewBuffer(10)
	h := NewHandler(b, slog.LevelInfo).WithGroup("req")
	if err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "ok", 0)); err != nil {
		t.Fatal(err)
	}
	if len(b.Tail(0)) != 1 {
		t.Fatal("grouped record not recorded")
	}
}
