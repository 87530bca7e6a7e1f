package historylogic

import "strings"

// Navigator is a cursor over the command history. The cursor ranges over
// [0, N] where N is the number of entries; N means a fresh input line.
//
// It is not safe for concurrent use without external synchronization.
type Navigator struct {
	entries []string
	cursor  int
	persist func([]string)
}

// NewNavigator seeds a navigator with entries and parks the cursor at N.
// persist, when non-nil, receives a copy of the list after every mutation.
func NewNavigator(entries []string, persist func([]string)) *Navigator {
	list := make([]string, len(entries))
	copy(list, entries)
	return &Navigator{entries: list, cursor: len(list), persist: persist}
}

// Up moves to the previous (older) entry and returns its text.
// Typed-but-unsubmitted input at the fresh position is kept as a draft entry
// so Down can return to it. ok is false when no entry is under the cursor.
func (n *Navigator) Up(current string) (string, bool) {
	last := len(n.entries)
	if n.cursor == last && current != "" && (last == 0 || n.entries[last-1] != current) {
		n.entries = append(n.entries, current)
		n.save()
	}
	if n.cursor > 0 {
		n.cursor--
	}
	if n.cursor < len(n.entries) {
		return n.entries[n.cursor], true
	}
	return "", false
}

// Down moves to the next (newer) entry. At the fresh position it returns "".
func (n *Navigator) Down() string {
	if n.cursor < len(n.entries) {
		n.cursor++
	}
	if n.cursor == len(n.entries) {
		return ""
	}
	return n.entries[n.cursor]
}

// Edited treats text that diverges from the entry under the cursor as a new draft.
func (n *Navigator) Edited(text string) {
	if n.cursor < len(n.entries) && text != n.entries[n.cursor] {
		n.cursor = len(n.entries)
	}
}

// Record appends an accepted submission unless it is blank or repeats the
// last entry, and parks the cursor at N. It reports whether the list grew.
func (n *Navigator) Record(input string) bool {
	defer func() { n.cursor = len(n.entries) }()
	if strings.TrimSpace(input) == "" {
		return false
	}
	if last := len(n.entries); last > 0 && n.entries[last-1] == input {
		return false
	}
	n.entries = append(n.entries, input)
	n.save()
	return true
}

// Cursor returns the current cursor position.
func (n *Navigator) Cursor() int {
	return n.cursor
}

// Len returns the number of entries.
func (n *Navigator) Len() int {
	return len(n.entries)
}

// Entries returns a copy of the history, oldest first.
func (n *Navigator) Entries() []string {
	out := make([]string, len(n.entries))
	copy(out, n.entries)
	return out
}

func (n *Navigator) save() {
	if n.persist != nil {
		n.persist(n.Entries())
	}
}
