package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"textsmith/cmd/textsmith/config"
	"textsmith/internal/prompt"
	"textsmith/internal/session"
)

func newTestModel(t *testing.T) tuiModel {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	m := newTUIModel(config.DefaultConfig(), zap.NewNop())
	m.ready = true
	return m
}

func update(t *testing.T, m tuiModel, msg tea.Msg) (tuiModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(tuiModel)
	require.True(t, ok)
	return next, cmd
}

func TestCopyKeyWithResult(t *testing.T) {
	oldClipboard := clipboardWriteAll
	var copied string
	clipboardWriteAll = func(text string) error { copied = text; return nil }
	defer func() { clipboardWriteAll = oldClipboard }()

	m := newTestModel(t)
	m.sess.Output = "generated result"

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "generated result", copied)
	assert.Equal(t, session.StatusSuccess, m.sess.Status.Kind)
	assert.NotNil(t, cmd, "a dismiss timer must be armed")
}

func TestCopyKeyWithoutResult(t *testing.T) {
	oldClipboard := clipboardWriteAll
	called := false
	clipboardWriteAll = func(string) error { called = true; return nil }
	defer func() { clipboardWriteAll = oldClipboard }()

	m := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.False(t, called)
	assert.Equal(t, session.StatusError, m.sess.Status.Kind)
	assert.Equal(t, "Nothing to copy!", m.sess.Status.Text)
}

func TestClearKeyResetsInputOutputAndBanner(t *testing.T) {
	m := newTestModel(t)
	m.textarea.SetValue("some text")
	m.sess.Input = "some text"
	m.sess.Output = "old result"
	m.sess.SetStatus(session.StatusError, "old banner")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Empty(t, m.textarea.Value())
	assert.Empty(t, m.sess.Input)
	assert.Empty(t, m.sess.Output)
	assert.Equal(t, "Input cleared!", m.sess.Status.Text)
	assert.NotNil(t, cmd)
}

func TestTriggerWithBlankInputShowsError(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, m.sess.Busy)
	assert.Equal(t, session.StatusError, m.sess.Status.Kind)
}

func TestTriggerStartsGeneration(t *testing.T) {
	m := newTestModel(t)
	m.textarea.SetValue("text to summarize")
	m.keyInput.SetValue("test-key")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.True(t, m.sess.Busy)
	assert.NotNil(t, cmd)
}

func TestGenerateDoneMsg(t *testing.T) {
	m := newTestModel(t)
	m.textarea.SetValue("input")
	m.keyInput.SetValue("test-key")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, m.sess.Busy)

	m, cmd := update(t, m, generateDoneMsg{text: "Hello"})
	assert.False(t, m.sess.Busy)
	assert.Equal(t, "Hello", m.sess.Output)
	assert.Equal(t, session.StatusSuccess, m.sess.Status.Kind)
	assert.NotNil(t, cmd)
}

func TestStatusExpiryIsSequenceGuarded(t *testing.T) {
	m := newTestModel(t)
	stale := m.sess.SetStatus(session.StatusError, "first")
	fresh := m.sess.SetStatus(session.StatusSuccess, "second")

	m, _ = update(t, m, statusExpireMsg{seq: stale})
	assert.Equal(t, "second", m.sess.Status.Text, "stale timer must not clear a newer banner")

	m, _ = update(t, m, statusExpireMsg{seq: fresh})
	assert.Equal(t, session.StatusNone, m.sess.Status.Kind)
}

func TestTypingFrozenWhileBusy(t *testing.T) {
	m := newTestModel(t)
	m.textarea.SetValue("original")
	m.keyInput.SetValue("test-key")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, m.sess.Busy)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, "original", m.textarea.Value())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, prompt.LengthStandard, m.sess.SummaryLength, "options frozen while busy")
}

func TestOptionCycling(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, prompt.LengthStandard, m.sess.SummaryLength)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, prompt.LengthDetailed, m.sess.SummaryLength)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, prompt.LengthConcise, m.sess.SummaryLength)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, prompt.LengthStandard, m.sess.SummaryLength)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, prompt.StyleCasual, m.sess.ParaphraseStyle)
}

func TestFocusToggle(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, focusInput, m.focus)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusKey, m.focus)

	// Typed runes now land in the key field, not the textarea.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.Equal(t, "k", m.keyInput.Value())
	assert.Empty(t, m.textarea.Value())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusInput, m.focus)
}
