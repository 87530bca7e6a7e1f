package historylogic

import (
	"reflect"
	"testing"
)

func TestRecordDedupsAdjacent(t *testing.T) {
	var saved [][]string
	n := NewNavigator(nil, func(e []string) { saved = append(saved, e) })

	if !n.Record("x + 1") {
		t.Fatalf("first record should append")
	}
	if n.Record("x + 1") {
		t.Fatalf("repeat should not append")
	}
	if n.Record("   ") {
		t.Fatalf("blank should not append")
	}
	if got := n.Entries(); !reflect.DeepEqual(got, []string{"x + 1"}) {
		t.Fatalf("entries=%v", got)
	}
	if len(saved) != 1 {
		t.Fatalf("persisted %d times want 1", len(saved))
	}
	if n.Cursor() != n.Len() {
		t.Fatalf("cursor=%d want %d", n.Cursor(), n.Len())
	}
}

func TestDownPastEndClampsAndClears(t *testing.T) {
	n := NewNavigator([]string{"a", "b", "c"}, nil)
	for i := 0; i < n.Len()+5; i++ {
		if got := n.Down(); got != "" {
			t.Fatalf("Down()=%q want empty", got)
		}
	}
	if n.Cursor() != 3 {
		t.Fatalf("cursor=%d want 3", n.Cursor())
	}
}

func TestUpClampsAtOldest(t *testing.T) {
	n := NewNavigator([]string{"a", "b", "c"}, nil)
	var last string
	for i := 0; i < 10; i++ {
		text, ok := n.Up("")
		if !ok {
			t.Fatalf("Up #%d returned no entry", i)
		}
		last = text
	}
	if last != "a" || n.Cursor() != 0 {
		t.Fatalf("last=%q cursor=%d", last, n.Cursor())
	}
	if got := n.Down(); got != "b" {
		t.Fatalf("Down()=%q want b", got)
	}
}

func TestEmptyHistoryNavigationIsNoop(t *testing.T) {
	n := NewNavigator(nil, nil)
	if _, ok := n.Up(""); ok {
		t.Fatalf("Up on empty history returned an entry")
	}
	if got := n.Down(); got != "" {
		t.Fatalf("Down()=%q want empty", got)
	}
	if n.Cursor() != 0 {
		t.Fatalf("cursor=%d want 0", n.Cursor())
	}
}

func TestUpCapturesDraft(t *testing.T) {
	var saved []string
	n := NewNavigator([]string{"a", "b"}, func(e []string) { saved = e })

	text, ok := n.Up("draft")
	if !ok || text != "b" {
		t.Fatalf("Up=%q,%v want b,true", text, ok)
	}
	if !reflect.DeepEqual(saved, []string{"a", "b", "draft"}) {
		t.Fatalf("saved=%v", saved)
	}
	if got := n.Down(); got != "draft" {
		t.Fatalf("Down()=%q want draft", got)
	}
	if got := n.Down(); got != "" {
		t.Fatalf("Down()=%q want empty", got)
	}
}

func TestUpSkipsDraftEqualToLast(t *testing.T) {
	n := NewNavigator([]string{"a", "b"}, nil)
	if text, _ := n.Up("b"); text != "b" {
		t.Fatalf("Up=%q want b", text)
	}
	if n.Len() != 2 {
		t.Fatalf("len=%d want 2", n.Len())
	}
}

func TestEditedResetsCursor(t *testing.T) {
	n := NewNavigator([]string{"a", "b"}, nil)
	n.Up("")
	n.Edited("b")
	if n.Cursor() != 1 {
		t.Fatalf("unchanged text moved cursor to %d", n.Cursor())
	}
	n.Edited("b!")
	if n.Cursor() != 2 {
		t.Fatalf("cursor=%d want 2", n.Cursor())
	}
}

func TestNewNavigatorCopiesSeed(t *testing.T) {
	seed := []string{"a"}
	n := NewNavigator(seed, nil)
	n.Record("b")
	if len(seed) != 1 || seed[0] != "a" {
		t.Fatalf("seed mutated: %v", seed)
	}
}
