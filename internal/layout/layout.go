package layout

import (
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Region names an element of the console template the widget binds to.
type Region string

const (
	OutputArea   Region = "output-area"
	InputField   Region = "input-field"
	ClearControl Region = "clear-control"
	ShowControl  Region = "show-control"
	HideControl  Region = "hide-control"
	Container    Region = "container"
	EvalContext  Region = "eval-context"
)

// ConsoleRegions lists every region the console widget binds to.
var ConsoleRegions = []Region{OutputArea, InputField, ClearControl, ShowControl, HideControl, Container, EvalContext}

// Template is a parsed markup fragment.
type Template struct {
	name    string
	html    string
	regions map[Region]bool
}

// Parse reads a fragment and records which of the wanted regions it
// contains. A region is an element whose id is the region name.
func Parse(name string, r io.Reader, wanted ...Region) (*Template, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	html, err := doc.Find("body").Html()
	if err != nil {
		return nil, fmt.Errorf("render template %s: %w", name, err)
	}
	t := &Template{name: name, html: strings.TrimSpace(html), regions: make(map[Region]bool, len(wanted))}
	for _, region := range wanted {
		t.regions[region] = doc.Find("#"+string(region)).Length() > 0
	}
	return t, nil
}

// Load reads and parses a fragment from fsys.
func Load(fsys fs.FS, name string, wanted ...Region) (*Template, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open template %s: %w", name, err)
	}
	defer f.Close()
	return Parse(name, f, wanted...)
}

// Full returns a template that reports every region as present, for hosts
// that render their own markup.
func Full() *Template {
	t := &Template{name: "builtin", regions: make(map[Region]bool, len(ConsoleRegions))}
	for _, region := range ConsoleRegions {
		t.regions[region] = true
	}
	return t
}

func (t *Template) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// HTML returns the fragment markup.
func (t *Template) HTML() string {
	if t == nil {
		return ""
	}
	return t.html
}

// Has reports whether region is present. A nil template has no regions.
func (t *Template) Has(region Region) bool {
	if t == nil {
		return false
	}
	return t.regions[region]
}

// Missing lists the console regions that were wanted but are absent.
func (t *Template) Missing() []Region {
	if t == nil {
		return append([]Region(nil), ConsoleRegions...)
	}
	var out []Region
	for _, region := range ConsoleRegions {
		if present, wanted := t.regions[region]; wanted && !present {
			out = append(out, region)
		}
	}
	return out
}
