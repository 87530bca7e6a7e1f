package consolewidget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"devconsole/internal/debounce"
	"devconsole/internal/historylogic"
	"devconsole/internal/kvstore"
	"devconsole/internal/layout"
	"devconsole/internal/logcapture"
	"devconsole/internal/scriptexec"
	"devconsole/internal/scriptruntime"
	"devconsole/internal/scrollback"
	"devconsole/internal/uistate"

	"github.com/google/uuid"
	"pkt.systems/pslog"
)

const (
	resizeKey       = "resize"
	clearedNotice   = "Console cleared; evaluation context reset"
	defaultMaxLines = 1000
	defaultDebounce = 300 * time.Millisecond
	defaultWidth    = 640
	defaultHeight   = 320
)

// Phase is the widget lifecycle state.
type Phase int

const (
	Unattached Phase = iota
	Initializing
	Ready
	TornDown
)

func (p Phase) String() string {
	switch p {
	case Unattached:
		return "unattached"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	case TornDown:
		return "torn-down"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// View renders the widget. Implementations must not log through the
// capture hub from AppendLine; it runs while the hub is locked.
type View interface {
	AppendLine(line scrollback.Line)
	ClearLines()
	SetPanel(panel uistate.Panel)
	SetInput(text string)
	Focus()
}

// Options configures a Widget.
type Options struct {
	// ID identifies the widget in the capture hub. Defaults to a random UUID.
	ID string
	// Hub defaults to the installed process console's hub.
	Hub       *logcapture.Hub
	Store     kvstore.Store
	Namespace string
	// Defaults apply on first run, before any panel state was persisted.
	// A nil Defaults starts the panel visible at the default size.
	Defaults       *uistate.Panel
	MaxLines       int
	ResizeDebounce time.Duration
	Logger         pslog.Logger
	// OnHiddenError is called for error lines that arrive while the panel is hidden.
	OnHiddenError func(line scrollback.Line)
}

// Widget is the developer console: it displays captured log entries and
// evaluates submitted statements against a persistent scope.
type Widget struct {
	id            string
	hub           *logcapture.Hub
	log           pslog.Logger
	state         *uistate.State
	onHiddenError func(scrollback.Line)

	mu       sync.Mutex
	phase    Phase
	view     View
	tpl      *layout.Template
	panel    uistate.Panel
	nav      *historylogic.Navigator
	runtime  *scriptruntime.Runtime
	eval     *scriptexec.Evaluator
	debounce *debounce.Debouncer

	outMu        sync.Mutex
	lines        *scrollback.Buffer
	outView      View
	renderOutput bool
	panelHidden  bool
}

// New builds an unattached widget and loads its persisted state.
func New(opts Options) *Widget {
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	logger := opts.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	logger = logger.With("widget", id)
	hub := opts.Hub
	if hub == nil {
		if c := logcapture.Installed(); c != nil {
			hub = c.Hub()
		} else {
			hub = logcapture.NewHub()
		}
	}
	defaults := uistate.Panel{Visible: true}
	if opts.Defaults != nil {
		defaults = *opts.Defaults
	}
	if defaults.Width <= 0 {
		defaults.Width = defaultWidth
	}
	if defaults.Height <= 0 {
		defaults.Height = defaultHeight
	}
	maxLines := opts.MaxLines
	if maxLines <= 0 {
		maxLines = defaultMaxLines
	}
	delay := opts.ResizeDebounce
	if delay <= 0 {
		delay = defaultDebounce
	}

	state := uistate.New(opts.Store, opts.Namespace, logger)
	w := &Widget{
		id:            id,
		hub:           hub,
		log:           logger,
		state:         state,
		onHiddenError: opts.OnHiddenError,
		phase:         Unattached,
		panel:         state.Panel(defaults),
		nav:           historylogic.NewNavigator(state.History(), state.SetHistory),
		debounce:      debounce.New(delay),
		lines:         scrollback.New(maxLines),
	}
	w.eval = scriptexec.New(scriptexec.Dependencies{AppendLine: w.appendTagged})
	return w
}

// Attach binds the widget to view and tpl, establishes the evaluation
// context, and registers as the active display. Entries captured before
// this call are rendered first, in capture order.
func (w *Widget) Attach(ctx context.Context, view View, tpl *layout.Template) error {
	if view == nil {
		return errors.New("consolewidget: view is required")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase != Unattached {
		return fmt.Errorf("consolewidget: attach in phase %s", w.phase)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	w.phase = Initializing

	w.view = view
	w.tpl = tpl
	for _, region := range tpl.Missing() {
		w.log.Warn("console template region missing", "template", tpl.Name(), "region", region)
	}
	deps := scriptexec.Dependencies{AppendLine: w.appendTagged}
	if tpl.Has(layout.EvalContext) {
		w.runtime = scriptruntime.New(w.contextLog)
		deps.Engine = w.runtime
	}
	w.eval = scriptexec.New(deps)

	w.outMu.Lock()
	w.outView = view
	w.renderOutput = tpl.Has(layout.OutputArea)
	w.panelHidden = !w.panel.Visible
	w.outMu.Unlock()

	w.phase = Ready
	flushed := w.hub.Attach(w.id, w.receive)
	view.SetPanel(w.panel)
	if w.panel.Visible {
		view.Focus()
	}
	w.log.Info("console widget ready", "flushed", flushed, "visible", w.panel.Visible)
	return nil
}

// Detach releases the widget's display registration and evaluation context.
// A registration taken over by another widget is left alone.
func (w *Widget) Detach() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase == TornDown {
		return
	}
	released := w.hub.Detach(w.id)
	if w.debounce.Pending(resizeKey) {
		w.state.SetSize(w.panel.Width, w.panel.Height)
	}
	w.debounce.Stop()
	if w.runtime != nil {
		w.runtime.Close()
	}
	w.outMu.Lock()
	w.outView = nil
	w.outMu.Unlock()
	w.phase = TornDown
	w.log.Info("console widget torn down", "released", released)
}

// Submit records input in the history, echoes it, and evaluates it.
func (w *Widget) Submit(input string) scriptexec.Outcome {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.ready("submit", layout.InputField) || strings.TrimSpace(input) == "" {
		return scriptexec.Rejected
	}
	w.nav.Record(input)
	w.appendTagged(scrollback.TagInput, input)
	outcome := w.eval.Submit(input)
	w.view.SetInput("")
	return outcome
}

// HistoryUp shows the previous history entry. current is the text in the
// input field; it is kept as a draft when navigating away from a fresh line.
func (w *Widget) HistoryUp(current string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.ready("history-up", layout.InputField) {
		return current
	}
	text, ok := w.nav.Up(current)
	if !ok {
		return current
	}
	w.view.SetInput(text)
	return text
}

// HistoryDown shows the next history entry, or an empty line past the newest.
func (w *Widget) HistoryDown() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.ready("history-down", layout.InputField) {
		return ""
	}
	text := w.nav.Down()
	w.view.SetInput(text)
	return text
}

// InputChanged reports a manual edit of the input field.
func (w *Widget) InputChanged(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.ready("input", layout.InputField) {
		return
	}
	w.nav.Edited(text)
}

// Show makes the panel visible, focuses the input and scrolls to the latest line.
func (w *Widget) Show() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.ready("show", layout.ShowControl) {
		return
	}
	w.setVisible(true)
}

// Hide hides the panel.
func (w *Widget) Hide() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.ready("hide", layout.HideControl) {
		return
	}
	w.setVisible(false)
}

// Toggle flips the panel visibility.
func (w *Widget) Toggle() {
	w.mu.Lock()
	defer w.mu.Unlock()
	region := layout.ShowControl
	if w.panel.Visible {
		region = layout.HideControl
	}
	if !w.ready("toggle", region) {
		return
	}
	w.setVisible(!w.panel.Visible)
}

func (w *Widget) setVisible(visible bool) {
	w.panel.Visible = visible
	w.state.SetVisible(visible)
	w.outMu.Lock()
	w.panelHidden = !visible
	w.outMu.Unlock()
	w.view.SetPanel(w.panel)
	if visible {
		w.view.Focus()
	}
}

// Resize records a new panel size. It is persisted once resizing settles.
func (w *Widget) Resize(width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.ready("resize", layout.Container) || width <= 0 || height <= 0 {
		return
	}
	w.panel.Width = width
	w.panel.Height = height
	w.debounce.Trigger(resizeKey, func() {
		w.state.SetSize(width, height)
	})
}

// Clear empties the output area, resets the accumulated program and
// recreates the evaluation context. History and panel state are kept.
func (w *Widget) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.ready("clear", layout.ClearControl) {
		return
	}
	w.outMu.Lock()
	w.lines.Clear()
	if w.outView != nil && w.renderOutput {
		w.outView.ClearLines()
	}
	w.outMu.Unlock()
	w.eval.Reset()
	w.appendTagged(scrollback.TagSystem, clearedNotice)
}

func (w *Widget) ID() string { return w.id }

func (w *Widget) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Panel returns the current panel state.
func (w *Widget) Panel() uistate.Panel {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.panel
}

// History returns the command history, oldest first.
func (w *Widget) History() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nav.Entries()
}

// HistoryCursor returns the history navigation cursor.
func (w *Widget) HistoryCursor() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nav.Cursor()
}

// Program returns the accumulated program text.
func (w *Widget) Program() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.eval.Program()
}

// Lines returns the retained output lines, oldest first.
func (w *Widget) Lines() []scrollback.Line {
	w.outMu.Lock()
	defer w.outMu.Unlock()
	return w.lines.Lines()
}

// Text returns the retained output as flat text.
func (w *Widget) Text() string {
	w.outMu.Lock()
	defer w.outMu.Unlock()
	return w.lines.Text()
}

func (w *Widget) ready(op string, region layout.Region) bool {
	if w.phase != Ready {
		w.log.Debug("console operation ignored", "op", op, "phase", w.phase.String())
		return false
	}
	if !w.tpl.Has(region) {
		w.log.Debug("console operation ignored", "op", op, "missing_region", string(region))
		return false
	}
	return true
}

func (w *Widget) receive(e logcapture.Entry) {
	w.appendLine(scrollback.Line{Timestamp: e.Timestamp, Tag: severityTag(e.Severity), Text: e.Message})
}

func (w *Widget) contextLog(message string, tag scrollback.Tag, timestamp string) {
	w.appendLine(scrollback.Line{Timestamp: timestamp, Tag: tag, Text: message})
}

func (w *Widget) appendTagged(tag scrollback.Tag, text string) {
	w.appendLine(scrollback.Line{Timestamp: time.Now().UTC().Format(time.RFC3339Nano), Tag: tag, Text: text})
}

func (w *Widget) appendLine(line scrollback.Line) {
	w.outMu.Lock()
	line = w.lines.Append(line)
	if w.outView != nil && w.renderOutput {
		w.outView.AppendLine(line)
	}
	notify := w.panelHidden && line.Tag.IsError() && w.onHiddenError != nil
	w.outMu.Unlock()
	if notify {
		w.onHiddenError(line)
	}
}

func severityTag(s logcapture.Severity) scrollback.Tag {
	switch s {
	case logcapture.SeverityInfo:
		return scrollback.TagInfo
	case logcapture.SeverityWarn:
		return scrollback.TagWarn
	case logcapture.SeverityError:
		return scrollback.TagError
	default:
		return scrollback.TagLog
	}
}
