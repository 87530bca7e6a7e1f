package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"devconsole/internal/scrollback"
)

func TestHiddenErrorNoticeUsesTagAsSubtitle(t *testing.T) {
	n := hiddenErrorNotice(scrollback.Line{Tag: scrollback.TagEvalError, Text: "  ReferenceError: x is not defined\n    at <eval>:1:1  "})

	if n.Title != noticeTitle || n.Thread != noticeThread {
		t.Fatalf("unexpected title/thread %+v", n)
	}
	if n.Subtitle != string(scrollback.TagEvalError) {
		t.Fatalf("subtitle=%q want %q", n.Subtitle, scrollback.TagEvalError)
	}
	if n.Body != "ReferenceError: x is not defined …" {
		t.Fatalf("body=%q", n.Body)
	}
}

func TestHiddenErrorNoticeShortensLongText(t *testing.T) {
	n := hiddenErrorNotice(scrollback.Line{Tag: scrollback.TagError, Text: strings.Repeat("é", maxNoticeLength*2)})

	if got := utf8.RuneCountInString(n.Body); got != maxNoticeLength {
		t.Fatalf("body runes=%d want %d", got, maxNoticeLength)
	}
	if !strings.HasSuffix(n.Body, "…") || !utf8.ValidString(n.Body) {
		t.Fatalf("body not cut on a rune boundary: %q", n.Body)
	}
}
