package main

import (
	"encoding/json"
	"errors"
	"os"
	goruntime "runtime"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

const windowStateKey = "window-state"

// WindowState stores the window position and size
type WindowState struct {
	X         int  `json:"x"`
	Y         int  `json:"y"`
	Width     int  `json:"width"`
	Height    int  `json:"height"`
	Maximized bool `json:"maximized"`
}

// ConsoleRunScript asks for a script file and submits its contents to the
// console as one statement. It returns the outcome name, or "" when the
// dialog was dismissed.
func (a *App) ConsoleRunScript() (string, error) {
	path, err := runtime.OpenFileDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Run Script",
		Filters: []runtime.FileFilter{
			{DisplayName: "JavaScript", Pattern: "*.js"},
			{DisplayName: "All Files", Pattern: "*"},
		},
	})
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", nil
	}
	return a.runScriptFile(path)
}

func (a *App) runScriptFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return a.ConsoleSubmit(string(content)), nil
}

// SendNotification sends an OS-level notification.
func (a *App) SendNotification(title, message string) error {
	return notice{Title: title, Body: message}.post()
}

// SaveWindowState saves the current window position and size
func (a *App) SaveWindowState() error {
	if a.ctx == nil {
		return nil
	}
	x, y := runtime.WindowGetPosition(a.ctx)
	width, height := runtime.WindowGetSize(a.ctx)
	return a.storeWindowState(WindowState{
		X:         x,
		Y:         y,
		Width:     width,
		Height:    height,
		Maximized: runtime.WindowIsMaximised(a.ctx),
	})
}

// RestoreWindowState restores the window to its saved position and size
func (a *App) RestoreWindowState() {
	state, err := a.loadWindowState()
	if err != nil {
		a.log.Warn("load window state", "err", err)
		return
	}
	if state == nil || a.ctx == nil {
		return
	}

	if goruntime.GOOS != "darwin" {
		runtime.WindowSetPosition(a.ctx, state.X, state.Y)
	}
	runtime.WindowSetSize(a.ctx, state.Width, state.Height)

	if state.Maximized {
		runtime.WindowMaximise(a.ctx)
	}
}

func (a *App) storeWindowState(state WindowState) error {
	a.mu.Lock()
	store := a.store
	a.mu.Unlock()
	if store == nil {
		return errors.New("state store not open")
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return store.Set(windowStateKey, string(data))
}

// loadWindowState returns nil when nothing was saved.
func (a *App) loadWindowState() (*WindowState, error) {
	a.mu.Lock()
	store := a.store
	a.mu.Unlock()
	if store == nil {
		return nil, nil
	}
	raw, ok, err := store.Get(windowStateKey)
	if err != nil || !ok {
		return nil, err
	}

	var state WindowState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, err
	}
	// Keep the window at least partially usable.
	if state.Width < 400 {
		state.Width = 1024
	}
	if state.Height < 300 {
		state.Height = 768
	}
	return &state, nil
}
