package main

import (
	"context"
	"io/fs"
	"sync"

	"devconsole/internal/appconfig"
	"devconsole/internal/consolewidget"
	"devconsole/internal/kvstore"
	"devconsole/internal/layout"
	"devconsole/internal/logcapture"
	"devconsole/internal/scrollback"
	"devconsole/internal/uistate"

	"github.com/wailsapp/wails/v2/pkg/runtime"
	"pkt.systems/pslog"
)

const (
	consoleTemplateName = "console.html"
	navbarTemplateName  = "navbar.html"

	eventConsoleLine  = "console-line"
	eventConsoleClear = "console-clear"
	eventConsolePanel = "console-panel"
	eventConsoleInput = "console-input"
	eventConsoleFocus = "console-focus"
)

// App struct
type App struct {
	ctx       context.Context
	cfg       appconfig.Config
	console   *logcapture.Console
	templates fs.FS
	log       pslog.Logger

	// emit delivers view events to the frontend. Replaced in tests.
	emit func(event string, data ...interface{})

	mu         sync.Mutex
	store      kvstore.Store
	widget     *consolewidget.Widget
	consoleTpl *layout.Template
	navbarTpl  *layout.Template
}

// NewApp creates a new App application struct
func NewApp(cfg appconfig.Config, console *logcapture.Console, templates fs.FS, logger pslog.Logger) *App {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	a := &App{
		cfg:       cfg,
		console:   console,
		templates: templates,
		log:       logger,
	}
	a.emit = func(event string, data ...interface{}) {
		if a.ctx != nil {
			runtime.EventsEmit(a.ctx, event, data...)
		}
	}
	return a
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	if err := a.openConsole(false); err != nil {
		a.log.Error("console unavailable", "err", err)
	}
}

// onDomReady is called when the frontend DOM is ready
func (a *App) onDomReady(ctx context.Context) {
	a.RestoreWindowState()
	if err := a.attachConsole(ctx); err != nil {
		a.log.Error("console attach failed", "err", err)
	}
}

// onBeforeClose is called when the window is about to close
func (a *App) onBeforeClose(ctx context.Context) bool {
	if err := a.SaveWindowState(); err != nil {
		a.log.Warn("save window state", "err", err)
	}
	if w := a.consoleWidget(); w != nil {
		w.Detach()
	}
	return false // Allow close
}

// openConsole opens the state store, loads the templates and builds the
// console widget. Template failures leave the widget running with the
// regions it could resolve.
func (a *App) openConsole(ephemeral bool) error {
	store, err := consolewidget.OpenStore(a.cfg, ephemeral)
	if err != nil {
		return err
	}

	consoleTpl, err := layout.Load(a.templates, consoleTemplateName, layout.ConsoleRegions...)
	if err != nil {
		a.log.Warn("console template unavailable", "err", err)
	}
	navbarTpl, err := layout.Load(a.templates, navbarTemplateName)
	if err != nil {
		a.log.Warn("navbar template unavailable", "err", err)
	}

	opts := consolewidget.OptionsFromConfig(a.cfg, store, a.log)
	if a.console != nil {
		opts.Hub = a.console.Hub()
	}
	if a.cfg.Notify.HiddenErrors {
		opts.OnHiddenError = a.notifyHiddenError
	}

	a.mu.Lock()
	a.store = store
	a.consoleTpl = consoleTpl
	a.navbarTpl = navbarTpl
	a.widget = consolewidget.New(opts)
	a.mu.Unlock()

	a.welcome(store)
	return nil
}

func (a *App) attachConsole(ctx context.Context) error {
	a.mu.Lock()
	w, tpl := a.widget, a.consoleTpl
	a.mu.Unlock()
	if w == nil {
		return nil
	}
	return w.Attach(ctx, webView{emit: a.emit}, tpl)
}

func (a *App) consoleWidget() *consolewidget.Widget {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.widget
}

func (a *App) notifyHiddenError(line scrollback.Line) {
	// Called under the capture hub lock.
	go func() {
		if err := hiddenErrorNotice(line).post(); err != nil {
			a.log.Debug("notification failed", "err", err)
		}
	}()
}

// webView renders the console through frontend events.
type webView struct {
	emit func(event string, data ...interface{})
}

func (v webView) AppendLine(line scrollback.Line) { v.emit(eventConsoleLine, line) }
func (v webView) ClearLines()                     { v.emit(eventConsoleClear) }
func (v webView) SetPanel(panel uistate.Panel)    { v.emit(eventConsolePanel, panel) }
func (v webView) SetInput(text string)            { v.emit(eventConsoleInput, text) }
func (v webView) Focus()                          { v.emit(eventConsoleFocus) }
