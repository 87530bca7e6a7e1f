package main

import (
	"io"
	"sync"

	"devconsole/internal/scrollback"
	"devconsole/internal/uistate"

	"github.com/fatih/color"
)

var tagColors = map[scrollback.Tag]*color.Color{
	scrollback.TagLog:       color.New(),
	scrollback.TagInfo:      color.New(color.FgBlue),
	scrollback.TagWarn:      color.New(color.FgYellow),
	scrollback.TagError:     color.New(color.FgRed, color.Bold),
	scrollback.TagInput:     color.New(color.Faint),
	scrollback.TagOutput:    color.New(color.FgGreen),
	scrollback.TagSystem:    color.New(color.FgMagenta, color.Italic),
	scrollback.TagEvalLog:   color.New(color.FgCyan),
	scrollback.TagEvalInfo:  color.New(color.FgCyan),
	scrollback.TagEvalWarn:  color.New(color.FgHiYellow),
	scrollback.TagEvalError: color.New(color.FgHiRed),
}

var faint = color.New(color.Faint, color.Italic)

// terminalView renders console lines to a terminal. Lines that arrive while
// the panel is hidden are held back and printed when it is shown again.
type terminalView struct {
	mu      sync.Mutex
	out     io.Writer
	visible bool
	missed  []scrollback.Line
	input   string
}

func newTerminalView(out io.Writer) *terminalView {
	return &terminalView{out: out, visible: true}
}

func (v *terminalView) AppendLine(line scrollback.Line) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.visible {
		v.missed = append(v.missed, line)
		return
	}
	v.print(line)
}

func (v *terminalView) ClearLines() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.missed = nil
}

func (v *terminalView) SetPanel(panel uistate.Panel) {
	v.mu.Lock()
	defer v.mu.Unlock()
	was := v.visible
	v.visible = panel.Visible
	switch {
	case was && !panel.Visible:
		_, _ = faint.Fprintln(v.out, "console hidden; .show to resume output")
	case !was && panel.Visible:
		for _, line := range v.missed {
			v.print(line)
		}
		v.missed = nil
	}
}

func (v *terminalView) SetInput(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.input = text
	if text != "" {
		_, _ = faint.Fprintf(v.out, "  %s  (Enter to run)\n", text)
	}
}

func (v *terminalView) Focus() {}

// Input returns the recalled input line.
func (v *terminalView) Input() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.input
}

func (v *terminalView) Visible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible
}

func (v *terminalView) print(line scrollback.Line) {
	c, ok := tagColors[line.Tag]
	if !ok {
		c = color.New()
	}
	_, _ = c.Fprintf(v.out, "[%s] %s\n", line.Tag, line.Text)
}
