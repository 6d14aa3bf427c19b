// ABOUTME: Tests for the sort order menu
// ABOUTME: Validates preselection, cancel and option labels

package sortmenu

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/johnys190/movierama/internal/client"
)

func TestMenuOptions(t *testing.T) {
	if len(options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(options))
	}
	want := []client.Sort{client.SortNewest, client.SortLikes, client.SortHates}
	for i, o := range options {
		if o.value != want[i] {
			t.Errorf("option %d: expected %s, got %s", i, want[i], o.value)
		}
	}
}

func TestMenuPreselectsCurrent(t *testing.T) {
	m := New(client.SortHates)
	if m.Selected() != client.SortHates {
		t.Errorf("expected hates preselected, got %s", m.Selected())
	}
}

func TestMenuEscCancels(t *testing.T) {
	m := New(client.SortNewest)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Error("expected CancelledMsg")
	}
}

func TestMenuView(t *testing.T) {
	m := New(client.SortNewest)
	m.Init()
	view := m.View()
	if !strings.Contains(view, "Sort movies") {
		t.Errorf("expected title in view\nView:\n%s", view)
	}
}
