// Package logbuf keeps recent log output in memory for the dashboard
// log view and provides the repeating poller the view refreshes with.
package logbuf

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Buffer is a bounded ring of log lines, newest last.
type Buffer struct {
	mu       sync.Mutex
	capacity int
	lines    []string
}

func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 1000
	}
	return &Buffer{capacity: capacity}
}

func (b *Buffer) Append(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
	if len(b.lines) > b.capacity {
		b.lines = b.lines[len(b.lines)-b.capacity:]
	}
}

// Tail returns up to limit of the most recent lines, oldest first.
// limit <= 0 returns everything retained.
func (b *Buffer) Tail(limit int) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	start := 0
	if limit > 0 && len(b.lines) > limit {
		start = len(b.lines) - limit
	}
	out := make([]string, len(b.lines)-start)
	copy(out, b.lines[start:])
	return out
}

// WriteFile snapshots the retained lines to path, replacing any
// previous snapshot.
func (b *Buffer) WriteFile(path string) error {
	lines := b.Tail(0)
	data := strings.Join(lines, "\n")
	if data != "" {
		data += "\n"
	}
	return os.WriteFile(path, []byte(data), 0o644)
}

// Handler is a slog.Handler rendering records into a Buffer so the
// dashboard can serve recent lines over the API.
type Handler struct {
	buf   *Buffer
	level slog.Level
	attrs []slog.Attr
}

func NewHandler(buf *Buffer, level slog.Level) *Handler {
	return &Handler{buf: buf, level: level}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Time.Format("2006-01-02 15:04:05"))
	sb.WriteString(" ")
	sb.WriteString(r.Level.String())
	sb.WriteString(" ")
	sb.WriteString(r.Message)
	for _, attr := range h.attrs {
		writeAttr(&sb, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		writeAttr(&sb, attr)
		return true
	})
	h.buf.Append(sb.String())
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &Handler{buf: h.buf, level: h.level, attrs: merged}
}

// WithGroup is accepted but flattened; the dashboard view is a plain
// line log.
func (h *Handler) WithGroup(string) slog.Handler { return h }

func writeAttr(sb *strings.Builder, attr slog.Attr) {
	sb.WriteString(" ")
	sb.WriteString(attr.Key)
	sb.WriteString("=")
	sb.WriteString(fmt.Sprint(attr.Value.Any()))
}
