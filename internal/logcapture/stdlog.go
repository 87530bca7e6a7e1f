package logcapture

import (
	"io"
	"log"
	"strings"
)

// stdWriter captures lines written by the standard library logger and passes
// the raw bytes on to the writer it replaced.
type stdWriter struct {
	console *Console
	next    io.Writer
}

func (w *stdWriter) Write(p []byte) (int, error) {
	if msg := strings.TrimRight(string(p), "\r\n"); msg != "" {
		w.console.Record(SeverityLog, msg)
	}
	if w.next == nil {
		return len(p), nil
	}
	return w.next.Write(p)
}

// RedirectStdLog routes the standard library log package through console.
// Calling it again while a redirect is active leaves the output untouched.
func RedirectStdLog(console *Console) bool {
	if console == nil {
		return false
	}
	if _, ok := log.Writer().(*stdWriter); ok {
		return false
	}
	log.SetOutput(&stdWriter{console: console, next: log.Writer()})
	return true
}
