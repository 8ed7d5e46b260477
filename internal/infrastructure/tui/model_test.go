package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/passgen/internal/application/generator"
	"github.com/doeshing/passgen/internal/application/history"
	"github.com/doeshing/passgen/internal/application/session"
	"github.com/doeshing/passgen/internal/domain"
	infraconfig "github.com/doeshing/passgen/internal/infrastructure/config"
	"github.com/doeshing/passgen/internal/infrastructure/storage"
)

type fakeClipboard struct {
	text string
}

func (f *fakeClipboard) Name() string  { return "fake" }
func (f *fakeClipboard) Enabled() bool { return true }
func (f *fakeClipboard) Copy(_ context.Context, text string) error {
	f.text = text
	return nil
}

func newModel(t *testing.T) (Model, *session.Controller, *fakeClipboard) {
	t.Helper()
	clip := &fakeClipboard{}
	ctrl := session.NewController(context.Background(), session.Deps{
		Generator: generator.New(infraconfig.Default(), nil),
		History:   history.NewManager(storage.NewMemoryStore(), nil),
		Clipboard: clip,
	})
	return New(context.Background(), ctrl), ctrl, clip
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestLengthKeys(t *testing.T) {
	m, ctrl, _ := newModel(t)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = send(t, m, runes("+"))
	assert.Equal(t, 17, ctrl.State().PasswordLength)

	for i := 0; i < 20; i++ {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	assert.Equal(t, 8, ctrl.State().PasswordLength)
	_, _ = send(t, m, runes("-"))
	assert.Equal(t, 8, ctrl.State().PasswordLength)
}

func TestToggleAndGenerate(t *testing.T) {
	m, ctrl, _ := newModel(t)

	m, _ = send(t, m, runes("1"))
	m, _ = send(t, m, runes("3"))
	m, _ = send(t, m, runes("4"))
	assert.Equal(t, []domain.CharacterClass{domain.ClassLowercase}, ctrl.State().Options.Classes())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	state := ctrl.State()
	require.Equal(t, 15, state.CurrentPassword.Len())
	for _, r := range state.CurrentPassword.String() {
		assert.True(t, r >= 'a' && r <= 'z', "unexpected rune %q", r)
	}
	assert.Len(t, state.History, 1)
	assert.Contains(t, m.View(), state.CurrentPassword.String())
}

func TestGenerateWithNothingSelectedShowsNotice(t *testing.T) {
	m, ctrl, _ := newModel(t)
	for _, k := range []string{"1", "2", "3", "4"} {
		m, _ = send(t, m, runes(k))
	}
	m, _ = send(t, m, runes("g"))

	assert.Empty(t, ctrl.State().CurrentPassword)
	assert.Equal(t, noticeError, m.notice.kind)
	assert.Contains(t, m.View(), "Select at least one character type")
}

func TestCopyRunsAsCommand(t *testing.T) {
	m, ctrl, clip := newModel(t)
	m, _ = send(t, m, runes("g"))

	m, cmd := send(t, m, runes("c"))
	require.NotNil(t, cmd)
	msg := cmd()
	result, ok := msg.(copyResultMsg)
	require.True(t, ok)
	assert.Equal(t, session.CopiedPrimary, result.outcome)
	assert.Equal(t, ctrl.State().CurrentPassword.String(), clip.text)

	m, _ = send(t, m, msg)
	assert.Equal(t, noticeSuccess, m.notice.kind)
}

func TestClearHistoryKey(t *testing.T) {
	m, ctrl, _ := newModel(t)
	m, _ = send(t, m, runes("g"))
	m, _ = send(t, m, runes("g"))
	require.Len(t, ctrl.History(), 2)

	m, _ = send(t, m, runes("x"))
	assert.Empty(t, ctrl.History())
	assert.Equal(t, "History cleared", m.notice.text)
}

func TestQuit(t *testing.T) {
	m, _, _ := newModel(t)
	m, cmd := send(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestCopyNotice(t *testing.T) {
	assert.Equal(t, noticeInfo, copyNotice(copyResultMsg{outcome: session.CopyNothing}).kind)
	assert.Equal(t, noticeSuccess, copyNotice(copyResultMsg{outcome: session.CopiedFallback}).kind)
	assert.Equal(t, noticeError, copyNotice(copyResultMsg{outcome: session.CopyFailed, err: domain.ErrClipboardUnavailable}).kind)
}

func TestToggleBindingFollowsClassCount(t *testing.T) {
	four := toggleBinding(4)
	assert.Equal(t, []string{"1", "2", "3", "4"}, four.Keys())
	assert.Equal(t, "1-4", four.Help().Key)

	assert.Equal(t, "1-9", toggleBinding(12).Help().Key)
	assert.Len(t, toggleBinding(12).Keys(), 9)
	assert.False(t, toggleBinding(0).Enabled())

	m, ctrl, _ := newModel(t)
	_, _ = send(t, m, runes("5"))
	assert.Equal(t, domain.ClassOrder, ctrl.State().Options.Classes(), "unbound digit is ignored")
}
