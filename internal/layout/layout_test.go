package layout

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const consoleFragment = `<div id="container">
  <pre id="output-area"></pre>
  <input id="input-field">
  <button id="clear-control">Clear</button>
  <button id="show-control">Show</button>
  <button id="hide-control">Hide</button>
  <div id="eval-context" hidden></div>
</div>`

func TestParseFindsAllRegions(t *testing.T) {
	tpl, err := Parse("console.html", strings.NewReader(consoleFragment), ConsoleRegions...)
	require.NoError(t, err)

	for _, region := range ConsoleRegions {
		assert.True(t, tpl.Has(region), region)
	}
	assert.Empty(t, tpl.Missing())
	assert.Contains(t, tpl.HTML(), `id="output-area"`)
}

func TestParseReportsMissingRegions(t *testing.T) {
	fragment := `<div id="container"><pre id="output-area"></pre></div>`
	tpl, err := Parse("partial.html", strings.NewReader(fragment), ConsoleRegions...)
	require.NoError(t, err)

	assert.True(t, tpl.Has(OutputArea))
	assert.False(t, tpl.Has(InputField))
	assert.Equal(t, []Region{InputField, ClearControl, ShowControl, HideControl, EvalContext}, tpl.Missing())
}

func TestLoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"navbar.html": {Data: []byte(`<nav><a href="#">Home</a></nav>`)},
	}
	tpl, err := Load(fsys, "navbar.html")
	require.NoError(t, err)
	assert.Equal(t, `<nav><a href="#">Home</a></nav>`, tpl.HTML())
	assert.Equal(t, "navbar.html", tpl.Name())

	_, err = Load(fsys, "missing.html")
	assert.Error(t, err)
}

func TestNilAndFullTemplates(t *testing.T) {
	var nilTpl *Template
	assert.False(t, nilTpl.Has(OutputArea))
	assert.Len(t, nilTpl.Missing(), len(ConsoleRegions))

	full := Full()
	for _, region := range ConsoleRegions {
		assert.True(t, full.Has(region))
	}
}
