package main

import (
	"devconsole/internal/kvstore"
)

const firstRunKey = "first-run-completed"

// IsFirstRun checks if this is the first time the console has been opened
// against its state directory.
func (a *App) IsFirstRun() bool {
	a.mu.Lock()
	store := a.store
	a.mu.Unlock()
	return isFirstRun(store)
}

func isFirstRun(store kvstore.Store) bool {
	if store == nil {
		return true
	}
	_, ok, err := store.Get(firstRunKey)
	return err == nil && !ok
}

// welcome greets a first-run user through the captured log so the line is
// buffered until the panel attaches.
func (a *App) welcome(store kvstore.Store) {
	if !isFirstRun(store) {
		return
	}
	if a.console != nil {
		a.console.Info("Welcome to devconsole. Type a statement and press Enter; Up and Down walk the history.")
	}
	if err := store.Set(firstRunKey, "completed"); err != nil {
		a.log.Warn("mark first run", "err", err)
	}
}
