// ABOUTME: In-memory navigation history
// ABOUTME: Implements session.Navigator for the CLI and tests

package route

import (
	"sync"

	"github.com/johnys190/movierama/internal/constants"
)

// History is a stack of visited paths. The zero value starts at "/".
type History struct {
	mu      sync.Mutex
	entries []string
}

// NewHistory starts at path.
func NewHistory(path string) *History {
	return &History{entries: []string{Clean(path)}}
}

// Navigate pushes path.
func (h *History) Navigate(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, Clean(path))
}

// Replace swaps the top of the stack for path, e.g. when a navigation is
// redirected.
func (h *History) Replace(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		h.entries = []string{Clean(path)}
		return
	}
	h.entries[len(h.entries)-1] = Clean(path)
}

// Current returns the top of the stack.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return constants.RootPath
	}
	return h.entries[len(h.entries)-1]
}

// Back pops one entry and reports whether there was one to pop.
func (h *History) Back() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) <= 1 {
		return false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return true
}

// Entries returns a copy of the stack, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}
