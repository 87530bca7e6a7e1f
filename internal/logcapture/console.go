package logcapture

import (
	"context"
	"sync"

	"devconsole/internal/msgformat"

	"pkt.systems/pslog"
)

// Backend is the logging behavior a Console forwards every call to.
type Backend interface {
	Log(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
}

// Console intercepts the process logging surface. Each call is captured into
// the hub as exactly one Entry and then forwarded to the backend.
type Console struct {
	hub     *Hub
	backend Backend
}

// Wrap returns a Console capturing into hub and forwarding to backend.
// Wrapping a Console already bound to hub returns it unchanged so messages
// are never formatted or captured twice.
func Wrap(hub *Hub, backend Backend) *Console {
	if c, ok := backend.(*Console); ok && c.hub == hub {
		return c
	}
	return &Console{hub: hub, backend: backend}
}

func (c *Console) Log(args ...any)   { c.capture(SeverityLog, args) }
func (c *Console) Info(args ...any)  { c.capture(SeverityInfo, args) }
func (c *Console) Warn(args ...any)  { c.capture(SeverityWarn, args) }
func (c *Console) Error(args ...any) { c.capture(SeverityError, args) }

// Record captures a message that was already formatted elsewhere, such as a
// page console call forwarded by the web view. The backend is not called.
func (c *Console) Record(severity Severity, message string) {
	if c == nil {
		return
	}
	c.hub.Capture(NewEntry(severity, message))
}

// Hub returns the hub this console captures into.
func (c *Console) Hub() *Hub {
	if c == nil {
		return nil
	}
	return c.hub
}

func (c *Console) capture(severity Severity, args []any) {
	if c == nil {
		return
	}
	c.hub.Capture(NewEntry(severity, msgformat.Format(args...)))
	if c.backend == nil {
		return
	}
	switch severity {
	case SeverityInfo:
		c.backend.Info(args...)
	case SeverityWarn:
		c.backend.Warn(args...)
	case SeverityError:
		c.backend.Error(args...)
	default:
		c.backend.Log(args...)
	}
}

var (
	installMu sync.Mutex
	installed *Console
)

// Install wraps backend as the process console exactly once. Later calls
// return the console from the first call and leave it untouched.
func Install(hub *Hub, backend Backend) *Console {
	installMu.Lock()
	defer installMu.Unlock()
	if installed != nil {
		return installed
	}
	installed = Wrap(hub, backend)
	return installed
}

// Installed returns the process console, or nil before Install.
func Installed() *Console {
	installMu.Lock()
	defer installMu.Unlock()
	return installed
}

// PslogBackend forwards console calls to a pslog logger.
func PslogBackend(logger pslog.Logger) Backend {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return pslogBackend{log: logger}
}

type pslogBackend struct {
	log pslog.Logger
}

func (b pslogBackend) Log(args ...any)   { b.log.Info(msgformat.Format(args...), "console", "log") }
func (b pslogBackend) Info(args ...any)  { b.log.Info(msgformat.Format(args...), "console", "info") }
func (b pslogBackend) Warn(args ...any)  { b.log.Warn(msgformat.Format(args...), "console", "warn") }
func (b pslogBackend) Error(args ...any) { b.log.Error(msgformat.Format(args...), "console", "error") }
