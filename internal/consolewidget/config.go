package consolewidget

import (
	"devconsole/internal/appconfig"
	"devconsole/internal/kvstore"
	"devconsole/internal/uistate"

	"pkt.systems/pslog"
)

// OptionsFromConfig maps loaded settings onto widget options. Hub and
// OnHiddenError are left for the caller.
func OptionsFromConfig(cfg appconfig.Config, store kvstore.Store, logger pslog.Logger) Options {
	return Options{
		Store:     store,
		Namespace: cfg.Namespace,
		Defaults: &uistate.Panel{
			Visible: cfg.Panel.Visible,
			Width:   cfg.Panel.Width,
			Height:  cfg.Panel.Height,
		},
		MaxLines:       cfg.Display.MaxLines,
		ResizeDebounce: cfg.ResizeDebounce(),
		Logger:         logger,
	}
}

// OpenStore opens the durable store under cfg.StateDir, or an in-memory one
// when ephemeral is set.
func OpenStore(cfg appconfig.Config, ephemeral bool) (kvstore.Store, error) {
	if ephemeral {
		return kvstore.NewMemory(), nil
	}
	store, err := kvstore.OpenDisk(cfg.StateDir)
	if err != nil {
		return nil, err
	}
	return store, nil
}
