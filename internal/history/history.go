// Package history keeps the lines typed at the prompt across sessions.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultLimit caps how many entries are kept on disk.
const DefaultLimit = 500

// Entry is one line the user ran.
type Entry struct {
	Line  string    `json:"line"`
	RanAt time.Time `json:"ran_at"`
}

// History is a bounded, persisted list of entries, oldest first.
type History struct {
	mu      sync.RWMutex
	Entries []Entry `json:"entries"`
	path    string
	limit   int
	now     func() time.Time
}

// New returns an empty history stored at path. An empty path keeps it in
// memory only.
func New(path string, limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{path: path, limit: limit, now: time.Now}
}

// Open is New followed by Load.
func Open(path string, limit int) (*History, error) {
	h := New(path, limit)
	if err := h.Load(); err != nil {
		return h, err
	}
	return h, nil
}

// Load reads entries from disk. A missing file leaves the history empty.
func (h *History) Load() error {
	if h.path == "" {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := os.ReadFile(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal(data, &h.Entries); err != nil {
		return err
	}
	h.trim()
	return nil
}

// Save writes entries to disk.
func (h *History) Save() error {
	if h.path == "" {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(h.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(h.Entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(h.path, data, 0644)
}

// Add records line. Blank lines and repeats of the last line are skipped.
func (h *History) Add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.Entries); n > 0 && h.Entries[n-1].Line == line {
		return
	}
	h.Entries = append(h.Entries, Entry{Line: line, RanAt: h.now()})
	h.trim()
}

// Lines returns the recorded lines, oldest first.
func (h *History) Lines() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]string, len(h.Entries))
	for i, e := range h.Entries {
		out[i] = e.Line
	}
	return out
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Entries)
}

func (h *History) trim() {
	if over := len(h.Entries) - h.limit; over > 0 {
		h.Entries = append([]Entry(nil), h.Entries[over:]...)
	}
}
