package logcapture

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBackend struct {
	calls []string
}

func (b *recordingBackend) record(level string, args []any) {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	b.calls = append(b.calls, level+":"+strings.Join(parts, ","))
}

func (b *recordingBackend) Log(args ...any)   { b.record("log", args) }
func (b *recordingBackend) Info(args ...any)  { b.record("info", args) }
func (b *recordingBackend) Warn(args ...any)  { b.record("warn", args) }
func (b *recordingBackend) Error(args ...any) { b.record("error", args) }

func TestConsoleCapturesThenForwards(t *testing.T) {
	hub := NewHub()
	backend := &recordingBackend{}
	console := Wrap(hub, backend)

	console.Log("a", "b")
	console.Info("c")
	console.Warn("d")
	console.Error("e")

	assert.Equal(t, []string{"log:a,b", "info:c", "warn:d", "error:e"}, backend.calls)

	var got []Entry
	hub.Attach("w", func(e Entry) { got = append(got, e) })
	require.Len(t, got, 4)
	assert.Equal(t, Entry{Timestamp: got[0].Timestamp, Severity: SeverityLog, Message: "a b"}, got[0])
	assert.Equal(t, SeverityInfo, got[1].Severity)
	assert.Equal(t, SeverityWarn, got[2].Severity)
	assert.Equal(t, SeverityError, got[3].Severity)
	assert.NotEmpty(t, got[0].Timestamp)
}

func TestWrapDoesNotDoubleWrap(t *testing.T) {
	hub := NewHub()
	backend := &recordingBackend{}
	console := Wrap(hub, backend)
	again := Wrap(hub, console)

	require.Same(t, console, again)

	again.Log("once")
	assert.Equal(t, 1, hub.Pending())
	assert.Equal(t, []string{"log:once"}, backend.calls)
}

func TestInstallIsIdempotent(t *testing.T) {
	installMu.Lock()
	installed = nil
	installMu.Unlock()
	t.Cleanup(func() {
		installMu.Lock()
		installed = nil
		installMu.Unlock()
	})

	hub := NewHub()
	first := Install(hub, &recordingBackend{})
	second := Install(NewHub(), &recordingBackend{})

	assert.Same(t, first, second)
	assert.Same(t, first, Installed())
	assert.Same(t, hub, second.Hub())
}

func TestRecordSkipsBackend(t *testing.T) {
	hub := NewHub()
	backend := &recordingBackend{}
	console := Wrap(hub, backend)

	console.Record(SeverityWarn, "from page")

	assert.Empty(t, backend.calls)
	assert.Equal(t, 1, hub.Pending())
}

func TestRedirectStdLog(t *testing.T) {
	prevOut := log.Writer()
	prevFlags := log.Flags()
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})

	var out bytes.Buffer
	log.SetOutput(&out)
	log.SetFlags(0)

	hub := NewHub()
	console := Wrap(hub, nil)
	require.True(t, RedirectStdLog(console))
	require.False(t, RedirectStdLog(console), "second redirect must not wrap again")

	log.Printf("hello %d", 7)

	assert.Equal(t, "hello 7\n", out.String())
	var got []Entry
	hub.Attach("w", func(e Entry) { got = append(got, e) })
	require.Len(t, got, 1)
	assert.Equal(t, "hello 7", got[0].Message)
	assert.Equal(t, SeverityLog, got[0].Severity)
}
