package uistate

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"devconsole/internal/kvstore"

	"pkt.systems/pslog"
)

const (
	KeyVisible = "panel-visible"
	KeyWidth   = "panel-width"
	KeyHeight  = "panel-height"
	KeyHistory = "command-history"
)

// Panel is the durable visual state of the console panel.
type Panel struct {
	Visible bool `json:"visible"`
	Width   int  `json:"width"`
	Height  int  `json:"height"`
}

// State reads and writes per-widget settings through an opaque store.
// Reads never fail: missing or unreadable values yield the default.
// Writes are best-effort: failures are logged and dropped.
type State struct {
	store     kvstore.Store
	namespace string
	log       pslog.Logger
	mu        sync.Mutex
}

// New binds a State to store. Keys are prefixed with namespace when non-empty.
func New(store kvstore.Store, namespace string, logger pslog.Logger) *State {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	if store == nil {
		store = kvstore.NewMemory()
	}
	return &State{store: store, namespace: namespace, log: logger}
}

func (s *State) key(name string) string {
	if s.namespace == "" {
		return name
	}
	return s.namespace + ":" + name
}

func (s *State) get(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok, err := s.store.Get(s.key(name))
	if err != nil {
		s.log.Warn("uistate read failed; using default", "key", s.key(name), "err", err)
		return "", false
	}
	return val, ok
}

func (s *State) set(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(s.key(name), value); err != nil {
		s.log.Warn("uistate write failed", "key", s.key(name), "err", err)
	}
}

// Bool returns the stored flag or def.
func (s *State) Bool(name string, def bool) bool {
	raw, ok := s.get(name)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		s.log.Warn("uistate malformed bool; using default", "key", s.key(name), "value", raw)
		return def
	}
	return v
}

// Int returns the stored integer or def.
func (s *State) Int(name string, def int) int {
	raw, ok := s.get(name)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		s.log.Warn("uistate malformed int; using default", "key", s.key(name), "value", raw)
		return def
	}
	return v
}

// Panel loads the panel state, filling gaps from def.
func (s *State) Panel(def Panel) Panel {
	p := Panel{
		Visible: s.Bool(KeyVisible, def.Visible),
		Width:   s.Int(KeyWidth, def.Width),
		Height:  s.Int(KeyHeight, def.Height),
	}
	if p.Width <= 0 {
		p.Width = def.Width
	}
	if p.Height <= 0 {
		p.Height = def.Height
	}
	return p
}

// SetVisible persists the visibility flag as "true" or "false".
func (s *State) SetVisible(visible bool) {
	s.set(KeyVisible, strconv.FormatBool(visible))
}

// SetSize persists the panel size.
func (s *State) SetSize(width, height int) {
	s.set(KeyWidth, strconv.Itoa(width))
	s.set(KeyHeight, strconv.Itoa(height))
}

// History loads the command history. A malformed list yields an empty history.
func (s *State) History() []string {
	raw, ok := s.get(KeyHistory)
	if !ok || raw == "" {
		return []string{}
	}
	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.log.Warn("uistate malformed command history; starting empty", "key", s.key(KeyHistory), "err", err)
		return []string{}
	}
	if entries == nil {
		entries = []string{}
	}
	return entries
}

// SetHistory persists the command history as a JSON array.
func (s *State) SetHistory(entries []string) {
	if entries == nil {
		entries = []string{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		s.log.Warn("uistate encode command history failed", "err", err)
		return
	}
	s.set(KeyHistory, string(data))
}
