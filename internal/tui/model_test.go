package tui

import (
	"context"
	"strings"
	"testing"

	"gradebook/internal/gradebook"
	"gradebook/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// enter types value into the input and presses enter.
func enter(t *testing.T, m Model, value string) (Model, tea.Cmd) {
	t.Helper()
	var next tea.Model = m
	if value != "" {
		next, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)})
	}
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return got, cmd
}

func script(t *testing.T, m Model, values ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, v := range values {
		m, cmd = enter(t, m, v)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_AddUpdateDisplay(t *testing.T) {
	st := store.NewMemoryStore()
	m := New(context.Background(), st)

	m, cmd := script(t, m, "1", "Alice", "A", "2", "Alice", "B", "3")
	assert.False(t, isQuit(cmd))

	got := m.Transcript()
	want := []string{
		"Enter your choice: 1",
		"Enter student name: Alice",
		"Enter grade: A",
		gradebook.MsgAdded,
		"Enter your choice: 2",
		"Enter student name: Alice",
		"Enter new grade: B",
		gradebook.MsgUpdated,
		"Enter your choice: 3",
		"",
		"Student Grades:",
		"Alice : B",
	}
	assert.Equal(t, want, got)
	assert.Equal(t, stageChoice, m.stage)
}

func TestModel_UpdateMissing(t *testing.T) {
	st := store.NewMemoryStore()
	m := New(context.Background(), st)

	m, _ = script(t, m, "2", "Bob")

	got := m.Transcript()
	assert.Equal(t, gradebook.MsgNotFound, got[len(got)-1])
	assert.Equal(t, stageChoice, m.stage)
	assert.Equal(t, gradebook.PromptChoice, m.input.Prompt)

	n, err := st.Len(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestModel_InvalidChoice(t *testing.T) {
	m := New(context.Background(), store.NewMemoryStore())

	m, cmd := script(t, m, "9")

	assert.False(t, isQuit(cmd))
	got := m.Transcript()
	assert.Equal(t, gradebook.MsgInvalidChoice, got[len(got)-1])
}

func TestModel_Exit(t *testing.T) {
	st := store.NewMemoryStore()
	m := New(context.Background(), st)

	m, cmd := script(t, m, "1", "Alice", "A", "4")

	assert.True(t, isQuit(cmd))
	assert.True(t, m.done)
	got := m.Transcript()
	assert.Equal(t, gradebook.MsgExiting, got[len(got)-1])
	assert.NotContains(t, m.View(), "esc to quit")

	grade, err := st.Get(context.Background(), "Alice")
	require.NoError(t, err)
	assert.Equal(t, "A", grade)
}

func TestModel_EscQuits(t *testing.T) {
	m := New(context.Background(), store.NewMemoryStore())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, isQuit(cmd))
}

func TestModel_StoreFailureQuits(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Close())
	m := New(context.Background(), st)

	m, cmd := script(t, m, "1", "Alice", "A")

	assert.True(t, isQuit(cmd))
	assert.ErrorIs(t, m.Err(), store.ErrClosed)
}

func TestModel_ViewShowsMenuAndPrompt(t *testing.T) {
	m := New(context.Background(), store.NewMemoryStore())

	view := m.View()
	for _, label := range []string{"1. Add Student", "2. Update Student Grade", "3. Display All Grades", "4. Exit"} {
		assert.Contains(t, view, label)
	}
	assert.Contains(t, view, gradebook.PromptChoice)

	m, _ = enter(t, m, "1")
	assert.Contains(t, m.View(), gradebook.PromptName)
}

func TestModel_TranscriptFitsWindow(t *testing.T) {
	m := New(context.Background(), store.NewMemoryStore())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	m = next.(Model)

	for i := 0; i < 10; i++ {
		m, _ = enter(t, m, "9")
	}

	visible := m.visibleLines()
	assert.Len(t, visible, 12-len(m.menu)-6)
	assert.Equal(t, gradebook.MsgInvalidChoice, visible[len(visible)-1].text)
	assert.Equal(t, 20, len(m.Transcript()))
	assert.True(t, strings.HasPrefix(m.View(), m.styles.Title.Render("Student Grades")))
}
