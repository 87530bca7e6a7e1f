package consolewidget

import (
	"testing"
	"time"

	"devconsole/internal/appconfig"
	"devconsole/internal/uistate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsFromConfigCarriesPanelDefaults(t *testing.T) {
	cfg, err := appconfig.DefaultConfig()
	require.NoError(t, err)

	store, err := OpenStore(cfg, true)
	require.NoError(t, err)
	opts := OptionsFromConfig(cfg, store, nil)

	require.NotNil(t, opts.Defaults)
	assert.Equal(t, uistate.Panel{Visible: true, Width: 640, Height: 320}, *opts.Defaults)
	assert.Equal(t, 300*time.Millisecond, opts.ResizeDebounce)

	w := New(opts)
	assert.True(t, w.Panel().Visible)
}
