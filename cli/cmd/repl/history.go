package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"
)

// HistoryFile is the base name of the history file in the cache directory.
const HistoryFile = "history"

// HistoryEntry is one submitted line and the mode it was entered in.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// History is the list of submitted lines, persisted one per line with a
// mode prefix ("E:" for source, "C:" for commands). An empty path keeps the
// history in memory only.
type History struct {
	path    string
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory returns an empty History backed by the file at path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load replaces the entries with those read from the history file. A
// missing file is an empty history.
func (h *History) Load() error {
	if h.path == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		entry := HistoryEntry{Line: line, Mode: modeEval}

		if s, ok := strings.CutPrefix(line, "E:"); ok {
			entry.Line = s
		} else if s, ok := strings.CutPrefix(line, "C:"); ok {
			entry.Line, entry.Mode = s, modeCtrl
		}

		h.entries = append(h.entries, entry)
	}

	return scanner.Err()
}

// Add appends line to the history. An earlier identical entry in the same
// mode is moved to the end rather than repeated.
func (h *History) Add(line string, mode inputMode) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entry := HistoryEntry{Line: line, Mode: mode}

	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return nil
	}

	if i := slices.Index(h.entries, entry); i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
		h.entries = append(h.entries, entry)

		return h.rewrite()
	}

	h.entries = append(h.entries, entry)

	if h.path == "" {
		return nil
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(entry.String() + "\n")

	return err
}

// Entry returns the entry at index i, where 0 is the oldest.
func (h *History) Entry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// String returns the persisted form of the entry.
func (e HistoryEntry) String() string {
	if e.Mode == modeCtrl {
		return "C:" + e.Line
	}

	return "E:" + e.Line
}

// rewrite replaces the history file with the current entries.
// Must be called with h.mu held.
func (h *History) rewrite() error {
	if h.path == "" {
		return nil
	}

	var sb strings.Builder

	for _, entry := range h.entries {
		sb.WriteString(entry.String())
		sb.WriteByte('\n')
	}

	return os.WriteFile(h.path, []byte(sb.String()), 0o600)
}
