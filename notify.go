package main

import (
	"strings"
	"unicode/utf8"

	"github.com/gen2brain/beeep"

	"devconsole/internal/scrollback"
)

const (
	noticeTitle     = "devconsole"
	noticeThread    = "devconsole.hidden-errors"
	maxNoticeLength = 240
)

// notice is one OS notification. Subtitle and Thread are only honored by the
// native macOS path.
type notice struct {
	Title    string
	Subtitle string
	Body     string
	Thread   string
}

// hiddenErrorNotice describes an error line that arrived while the panel was
// hidden. The tag becomes the subtitle and the body is the first line of the
// message, shortened to fit a notification.
func hiddenErrorNotice(line scrollback.Line) notice {
	body := strings.TrimSpace(line.Text)
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = strings.TrimSpace(body[:i]) + " …"
	}
	if utf8.RuneCountInString(body) > maxNoticeLength {
		runes := []rune(body)
		body = string(runes[:maxNoticeLength-1]) + "…"
	}
	return notice{
		Title:    noticeTitle,
		Subtitle: string(line.Tag),
		Body:     body,
		Thread:   noticeThread,
	}
}

// post tries the native notification center first and falls back to beeep,
// which has no subtitle so it is folded into the title.
func (n notice) post() error {
	if err := notifyNative(n); err == nil {
		return nil
	}
	title := n.Title
	if n.Subtitle != "" {
		title += ": " + n.Subtitle
	}
	return beeep.Notify(title, n.Body, "")
}
