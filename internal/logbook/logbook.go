// internal/logbook/logbook.go
//
// The logbook is the user-visible activity feed: one line per storefront or
// admin action, persisted so the TUI's log panel survives restarts. It is
// separate from the zap debug log, which records request-level detail.

package logbook

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Logbook appends timestamped activity lines to a file and serves the most
// recent ones back to the log panel.
type Logbook struct {
	path string

	mu    sync.Mutex
	file  *os.File
	cache []string
}

// maxCached bounds how many recent lines are kept in memory for Tail.
const maxCached = 200

// Open creates (or reuses) the activity log at path and preloads the recent
// lines so Tail works immediately.
func Open(path string) (*Logbook, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logbook: ensure dir: %w", err)
	}
	lb := &Logbook{path: path}
	lb.cache = readRecent(path, maxCached)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logbook: open: %w", err)
	}
	lb.file = f
	return lb, nil
}

// Path returns the file backing this logbook.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Record appends one activity line. Failures are swallowed: the feed is a
// convenience, never a reason to fail a user action.
func (l *Logbook) Record(format string, args ...any) {
	if l == nil || l.file == nil {
		return
	}
	message := strings.TrimSpace(fmt.Sprintf(format, args...))
	if message == "" {
		return
	}
	line := fmt.Sprintf("%s %s", time.Now().Format("15:04:05"), message)

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.file, line)
	l.cache = append(l.cache, line)
	if len(l.cache) > maxCached {
		l.cache = l.cache[len(l.cache)-maxCached:]
	}
}

// Tail returns up to maxLines of the most recent activity lines.
func (l *Logbook) Tail(maxLines int) []string {
	if l == nil || maxLines <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.cache) <= maxLines {
		return append([]string(nil), l.cache...)
	}
	return append([]string(nil), l.cache[len(l.cache)-maxLines:]...)
}

// Close releases the file handle.
func (l *Logbook) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

func readRecent(path string, maxLines int) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if text := strings.TrimSpace(scanner.Text()); text != "" {
			lines = append(lines, text)
		}
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines
}
