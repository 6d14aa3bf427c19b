// ABOUTME: Notification sink abstraction for transient user-facing messages
// ABOUTME: Kinds, the process-wide toast configuration, and writer/recorder sinks

package notify

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Kind is the severity of a notification
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
	Warning Kind = "warning"
)

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Success, Error, Info, Warning:
		return k, nil
	}
	return "", fmt.Errorf("invalid notification kind: %q", s)
}

// Notification is a title plus body, e.g. {Movierama, You're successfully logged in.}
type Notification struct {
	Message     string
	Description string
}

// Sink displays notifications. Implementations must not block.
type Sink interface {
	Notify(kind Kind, n Notification)
}

// Placement is the corner a toast stack is drawn in
type Placement string

const (
	TopRight    Placement = "topRight"
	TopLeft     Placement = "topLeft"
	BottomRight Placement = "bottomRight"
	BottomLeft  Placement = "bottomLeft"
)

// Config is applied once per process.
type Config struct {
	Placement Placement
	// Offset is the number of rows between the frame edge and the stack
	Offset   int
	Duration time.Duration
}

// DefaultConfig mirrors the web client: top right, just below the header,
// three seconds.
func DefaultConfig() Config {
	return Config{Placement: TopRight, Offset: 1, Duration: 3 * time.Second}
}

// Top reports whether the stack grows downward from the top edge.
func (p Placement) Top() bool { return p == TopRight || p == TopLeft || p == "" }

// Right reports whether the stack is right-aligned.
func (p Placement) Right() bool { return p == TopRight || p == BottomRight || p == "" }

// WriterSink prints notifications as single lines, for CLI commands.
type WriterSink struct {
	W io.Writer

	mu sync.Mutex
}

func (s *WriterSink) Notify(kind Kind, n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.W, "%s %s: %s\n", symbol(kind), n.Message, n.Description)
}

func symbol(k Kind) string {
	switch k {
	case Success:
		return "✓"
	case Error:
		return "✗"
	case Warning:
		return "!"
	default:
		return "i"
	}
}

// Entry is one recorded notification
type Entry struct {
	Kind Kind
	Notification
}

// Recorder keeps every notification in order. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) Notify(kind Kind, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Kind: kind, Notification: n})
}

// Entries returns a copy of what was recorded.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Discard drops every notification
var Discard Sink = discard{}

type discard struct{}

func (discard) Notify(Kind, Notification) {}
