// Console bindings for the frontend.
// Key and click handlers in console.html call these; results render through
// the console-* events.

package main

import (
	"strings"

	"devconsole/internal/logcapture"
	"devconsole/internal/scrollback"
	"devconsole/internal/uistate"
)

// ConsoleState is a snapshot of the console widget for the frontend.
type ConsoleState struct {
	ID      string        `json:"id"`
	Phase   string        `json:"phase"`
	Panel   uistate.Panel `json:"panel"`
	History []string      `json:"history"`
	Program string        `json:"program"`
}

// ConsoleSubmit evaluates input and returns the outcome name.
func (a *App) ConsoleSubmit(input string) string {
	w := a.consoleWidget()
	if w == nil {
		return ""
	}
	return w.Submit(input).String()
}

// ConsoleHistoryUp returns the previous history entry for the input field.
func (a *App) ConsoleHistoryUp(current string) string {
	w := a.consoleWidget()
	if w == nil {
		return current
	}
	return w.HistoryUp(current)
}

// ConsoleHistoryDown returns the next history entry for the input field.
func (a *App) ConsoleHistoryDown() string {
	w := a.consoleWidget()
	if w == nil {
		return ""
	}
	return w.HistoryDown()
}

// ConsoleInputChanged reports a manual edit of the input field.
func (a *App) ConsoleInputChanged(text string) {
	if w := a.consoleWidget(); w != nil {
		w.InputChanged(text)
	}
}

func (a *App) ConsoleShow() {
	if w := a.consoleWidget(); w != nil {
		w.Show()
	}
}

func (a *App) ConsoleHide() {
	if w := a.consoleWidget(); w != nil {
		w.Hide()
	}
}

func (a *App) ConsoleToggle() {
	if w := a.consoleWidget(); w != nil {
		w.Toggle()
	}
}

// ConsoleResize records the panel size after a drag.
func (a *App) ConsoleResize(width, height int) {
	if w := a.consoleWidget(); w != nil {
		w.Resize(width, height)
	}
}

// ConsoleClear clears the output and resets the evaluation context.
func (a *App) ConsoleClear() {
	if w := a.consoleWidget(); w != nil {
		w.Clear()
	}
}

// ConsoleLines returns the retained output lines for a reloaded frontend.
func (a *App) ConsoleLines() []scrollback.Line {
	w := a.consoleWidget()
	if w == nil {
		return nil
	}
	return w.Lines()
}

func (a *App) ConsoleState() ConsoleState {
	w := a.consoleWidget()
	if w == nil {
		return ConsoleState{Phase: "unavailable", History: []string{}}
	}
	return ConsoleState{
		ID:      w.ID(),
		Phase:   w.Phase().String(),
		Panel:   w.Panel(),
		History: w.History(),
		Program: w.Program(),
	}
}

// ConsoleTemplate returns the console markup.
func (a *App) ConsoleTemplate() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.consoleTpl.HTML()
}

// NavbarTemplate returns the navigation bar markup.
func (a *App) NavbarTemplate() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.navbarTpl.HTML()
}

// RecordLog lets the frontend push its own page console calls into the
// captured log.
func (a *App) RecordLog(level, message string) {
	message = strings.TrimSpace(message)
	if message == "" || a.console == nil {
		return
	}
	a.console.Record(logcapture.ParseSeverity(level), message)
}
