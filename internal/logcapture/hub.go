package logcapture

import (
	"strings"
	"sync"
	"time"
)

// Severity is the logging level a captured call was made at.
type Severity string

const (
	SeverityLog   Severity = "LOG"
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// ParseSeverity maps a free-form level name onto a Severity, defaulting to LOG.
func ParseSeverity(level string) Severity {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "info":
		return SeverityInfo
	case "warn", "warning":
		return SeverityWarn
	case "error", "err":
		return SeverityError
	default:
		return SeverityLog
	}
}

// Entry is one captured logging call.
type Entry struct {
	Timestamp string   `json:"timestamp"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
}

// NewEntry stamps a message with the current UTC time.
func NewEntry(severity Severity, message string) Entry {
	return Entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Severity:  severity,
		Message:   message,
	}
}

// Sink receives entries routed to the active display.
type Sink func(Entry)

// Hub holds captured entries until a display attaches and then routes new
// entries straight to it. It owns the capture buffer and the single
// active-display slot.
//
// Sinks run while the hub lock is held and must not capture back into the
// same hub.
type Hub struct {
	mu       sync.Mutex
	buffered []Entry
	owner    string
	sink     Sink
}

// NewHub returns an empty hub with no active display.
func NewHub() *Hub {
	return &Hub{}
}

// Capture routes the entry to the active display, or buffers it when none is attached.
func (h *Hub) Capture(e Entry) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sink != nil {
		h.sink(e)
		return
	}
	h.buffered = append(h.buffered, e)
}

// Attach registers sink as the active display for owner. Buffered entries are
// flushed to sink in capture order before the slot starts accepting live
// entries; captures racing with the flush queue behind it.
// It returns the number of flushed entries.
func (h *Hub) Attach(owner string, sink Sink) int {
	if h == nil || sink == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	pending := h.buffered
	h.buffered = nil
	for _, e := range pending {
		sink(e)
	}
	h.owner = owner
	h.sink = sink
	return len(pending)
}

// Detach clears the active display if, and only if, owner currently holds it.
func (h *Hub) Detach(owner string) bool {
	if h == nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sink == nil || h.owner != owner {
		return false
	}
	h.owner = ""
	h.sink = nil
	return true
}

// Owner returns the current active display owner, or "" when none.
func (h *Hub) Owner() string {
	if h == nil {
		return ""
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.owner
}

// Pending returns the number of buffered entries awaiting a display.
func (h *Hub) Pending() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.buffered)
}
