package scrollback

import "strings"

// Tag classifies a display line.
type Tag string

const (
	TagLog    Tag = "LOG"
	TagInfo   Tag = "INFO"
	TagWarn   Tag = "WARN"
	TagError  Tag = "ERROR"
	TagInput  Tag = "INPUT"
	TagOutput Tag = "OUTPUT"
	TagSystem Tag = "SYSTEM"

	TagEvalLog   Tag = "EVAL LOG"
	TagEvalInfo  Tag = "EVAL INFO"
	TagEvalWarn  Tag = "EVAL WARN"
	TagEvalError Tag = "EVAL ERROR"
)

// IsError reports whether the tag marks a failure line, host or evaluated.
func (t Tag) IsError() bool {
	return t == TagError || t == TagEvalError
}

// Line is one rendered row of the console output area. Seq increases by one
// per appended line and is never reused, so renderers can merge a Lines
// snapshot with live lines without duplicates.
type Line struct {
	Seq       uint64 `json:"seq"`
	Timestamp string `json:"timestamp"`
	Tag       Tag    `json:"tag"`
	Text      string `json:"text"`
}

// Buffer retains the most recent display lines, at most max of them.
// When max is exceeded the oldest lines scroll off.
//
// It is not safe for concurrent use without external synchronization.
type Buffer struct {
	max   int
	seq   uint64
	lines []Line
}

// New constructs a Buffer retaining at most max lines.
// If max <= 0, the buffer retains nothing.
func New(max int) *Buffer {
	if max < 0 {
		max = 0
	}
	return &Buffer{max: max}
}

// Append stamps line with the next sequence number, adds it and scrolls off
// the oldest lines beyond the cap. It returns the stamped line.
func (b *Buffer) Append(line Line) Line {
	if b == nil {
		return line
	}
	b.seq++
	line.Seq = b.seq
	if b.max <= 0 {
		b.lines = nil
		return line
	}
	b.lines = append(b.lines, line)
	if len(b.lines) > b.max {
		b.lines = b.lines[len(b.lines)-b.max:]
	}
	return line
}

// Lines returns a copy of the retained lines, oldest first.
func (b *Buffer) Lines() []Line {
	if b == nil {
		return nil
	}
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

// Text renders the retained lines as flat "[tag] text" rows.
func (b *Buffer) Text() string {
	if b == nil || len(b.lines) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte('[')
		sb.WriteString(string(line.Tag))
		sb.WriteString("] ")
		sb.WriteString(line.Text)
	}
	return sb.String()
}

// Clear removes all lines. Sequence numbers keep counting.
func (b *Buffer) Clear() {
	if b == nil {
		return
	}
	b.lines = nil
}

// Len returns the number of retained lines.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.lines)
}
