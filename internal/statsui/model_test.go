package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typedojo/internal/model"
	"github.com/verte-zerg/typedojo/internal/store"
)

func newTestModel(t *testing.T, words ...string) (*Model, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "typedojo.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	ctx := context.Background()
	for i, w := range words {
		rec := model.NewSavedWordStats(model.Word{Text: w}, time.UnixMilli(int64(len(words)-i)*1000))
		rec.Stats.Seen = 1
		if err := st.Put(ctx, rec); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	m := NewModel(st, model.StatsConfig{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, st
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestToggleStarPersists(t *testing.T) {
	m, st := newTestModel(t, "cat", "dog")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != tabWords {
		t.Fatalf("expected words tab")
	}
	m.Update(key("*"))

	got, _, err := st.Get(context.Background(), "cat")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Stats.Starred {
		t.Fatalf("expected cat to be starred")
	}

	m.Update(key("s"))
	if len(m.report.Words) != 1 || m.report.Words[0].Word.Text != "cat" {
		t.Fatalf("expected starred filter, got %+v", m.report.Words)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m, st := newTestModel(t, "cat", "dog")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	m.Update(key("d"))
	if m.confirmDelete != "cat" {
		t.Fatalf("expected confirmation for cat, got %q", m.confirmDelete)
	}
	if !strings.Contains(m.View(), "Remove stats for") {
		t.Fatalf("expected confirmation modal")
	}
	m.Update(key("n"))
	if n, _ := st.Count(context.Background()); n != 2 {
		t.Fatalf("cancel must keep the word, count=%d", n)
	}

	m.Update(key("d"))
	m.Update(key("y"))
	if n, _ := st.Count(context.Background()); n != 1 {
		t.Fatalf("expected one word left, count=%d", n)
	}
	if len(m.report.Words) != 1 || m.report.Words[0].Word.Text != "dog" {
		t.Fatalf("unexpected words after delete: %+v", m.report.Words)
	}
}

func TestFilterQuery(t *testing.T) {
	m, _ := newTestModel(t, "cat", "dog", "catalog")
	m.Update(key("/"))
	if !m.filterMode {
		t.Fatalf("expected filter mode")
	}
	for _, r := range "cat" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filterMode || m.cfg.Query != "cat" {
		t.Fatalf("expected query applied, got %+v", m.cfg)
	}
	if len(m.report.Words) != 2 {
		t.Fatalf("expected 2 matches, got %+v", m.report.Words)
	}
	if !strings.Contains(m.View(), "query=cat") {
		t.Fatalf("expected filter summary in header")
	}
}

func TestEmptyStoreView(t *testing.T) {
	m, _ := newTestModel(t)
	if !strings.Contains(m.View(), "No saved words found.") {
		t.Fatalf("expected empty message, got %q", m.View())
	}
}
