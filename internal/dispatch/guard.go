package dispatch

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Guard rate-limits deep scans process-wide through a timestamp file on
// local disk. It is a per-machine limiter only: two dispatcher instances on
// different machines are not mutually excluded.
type Guard struct {
	Path   string
	Window time.Duration
	now    func() time.Time
}

// NewGuard builds a guard over the given timestamp file.
func NewGuard(path string, window time.Duration) *Guard {
	return &Guard{Path: path, Window: window, now: time.Now}
}

// Allow reports whether enough time has passed since the last recorded deep
// scan. A missing or unreadable file counts as never ran.
func (g *Guard) Allow() bool {
	raw, err := os.ReadFile(g.Path)
	if err != nil {
		return true
	}
	last, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		return true
	}
	elapsed := g.now().Sub(time.Unix(0, int64(last*float64(time.Second))))
	return elapsed >= g.Window
}

// Update records the current time as the last deep-scan run.
func (g *Guard) Update() error {
	ts := float64(g.now().UnixNano()) / float64(time.Second)
	if err := os.WriteFile(g.Path, []byte(strconv.FormatFloat(ts, 'f', 6, 64)), 0o644); err != nil {
		return fmt.Errorf("failed to write guard file: %w", err)
	}
	return nil
}
