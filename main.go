package main

import (
	"context"
	"embed"
	"io/fs"
	"log"
	"os"

	"devconsole/internal/appconfig"
	"devconsole/internal/logcapture"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"pkt.systems/pslog"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	// Install before anything else logs so early entries reach the buffer.
	console := logcapture.Install(logcapture.NewHub(), logcapture.PslogBackend(logger))
	logcapture.RedirectStdLog(console)

	cfg, err := appconfig.Load(os.Getenv("DEVCONSOLE_CONFIG"))
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}
	templates, err := fs.Sub(assets, "frontend/dist")
	if err != nil {
		logger.Error("open templates", "err", err)
		os.Exit(1)
	}

	app := NewApp(cfg, console, templates, logger)

	err = wails.Run(&options.App{
		Title:     "devconsole",
		Width:     1024,
		Height:    768,
		MinWidth:  640,
		MinHeight: 480,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 9, G: 9, B: 11, A: 1}, // zinc-950
		OnStartup: func(ctx context.Context) {
			app.startup(pslog.ContextWithLogger(ctx, logger))
		},
		OnDomReady:    app.onDomReady,
		OnBeforeClose: app.onBeforeClose,
		Bind: []interface{}{
			app,
		},
	})

	if err != nil {
		logger.Error("wails run", "err", err)
		os.Exit(1)
	}
}
