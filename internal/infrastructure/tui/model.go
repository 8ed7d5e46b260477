// Package tui is the interactive terminal front end built on bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"

	"github.com/doeshing/passgen/internal/application/session"
	"github.com/doeshing/passgen/internal/domain"
	"github.com/doeshing/passgen/internal/infrastructure/render"
)

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeError
)

type notice struct {
	kind noticeKind
	text string
}

// copyResultMsg carries the outcome of an asynchronous clipboard write.
type copyResultMsg struct {
	outcome session.CopyOutcome
	err     error
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(render.ColorPrimary).MarginBottom(1)
	passwordStyle = lipgloss.NewStyle().Bold(true).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(render.ColorPrimary).
			Padding(0, 1)
	labelStyle   = lipgloss.NewStyle().Foreground(render.ColorMuted)
	successStyle = lipgloss.NewStyle().Foreground(render.ColorVeryStrong)
	errorStyle   = lipgloss.NewStyle().Foreground(render.ColorWeak).Bold(true)
)

// Model is the bubbletea model. All state lives in the session controller;
// the model only keeps presentation details.
type Model struct {
	ctx    context.Context
	ctrl   *session.Controller
	keys   keyMap
	help   help.Model
	notice notice
	quit   bool
}

// New builds a model over ctrl.
func New(ctx context.Context, ctrl *session.Controller) Model {
	cfg := ctrl.Config()
	return Model{
		ctx:  ctx,
		ctrl: ctrl,
		keys: defaultKeyMap(len(cfg.ClassNames())),
		help: help.New(),
	}
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, ctrl *session.Controller, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(New(ctx, ctrl), opts...).Run(); err != nil {
		return errors.Wrap(err, "run tui")
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case copyResultMsg:
		m.notice = copyNotice(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Shorter):
		m.ctrl.AdjustLength(-1)
	case key.Matches(msg, m.keys.Longer):
		m.ctrl.AdjustLength(1)
	case key.Matches(msg, m.keys.Toggle):
		m.toggle(msg.String())
	case key.Matches(msg, m.keys.Generate):
		m.generate()
	case key.Matches(msg, m.keys.Copy):
		m.notice = notice{kind: noticeInfo, text: "Copying..."}
		return m, m.copyCmd()
	case key.Matches(msg, m.keys.Clear):
		if err := m.ctrl.ClearHistory(m.ctx); err != nil {
			m.notice = notice{kind: noticeError, text: "History cleared, but could not be saved"}
		} else {
			m.notice = notice{kind: noticeSuccess, text: "History cleared"}
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) toggle(digit string) {
	cfg := m.ctrl.Config()
	classes := cfg.ClassNames()
	idx := int(digit[0] - '1')
	if idx < 0 || idx >= len(classes) {
		return
	}
	class := classes[idx]
	enabled, err := m.ctrl.ToggleClass(class)
	if err != nil {
		m.notice = notice{kind: noticeError, text: err.Error()}
		return
	}
	state := "off"
	if enabled {
		state = "on"
	}
	m.notice = notice{kind: noticeInfo, text: fmt.Sprintf("%s %s", classLabel(class), state)}
}

func (m *Model) generate() {
	out, err := m.ctrl.Generate(m.ctx)
	switch {
	case errors.Is(err, domain.ErrNoCharsetSelected):
		m.notice = notice{kind: noticeError, text: "Select at least one character type"}
	case err != nil:
		m.notice = notice{kind: noticeError, text: err.Error()}
	case out.HistoryErr != nil:
		m.notice = notice{kind: noticeError, text: "Generated, but history could not be saved"}
	default:
		m.notice = notice{}
	}
}

func (m Model) copyCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		outcome, err := ctrl.Copy(ctx)
		return copyResultMsg{outcome: outcome, err: err}
	}
}

func copyNotice(msg copyResultMsg) notice {
	switch msg.outcome {
	case session.CopiedPrimary:
		return notice{kind: noticeSuccess, text: "Copied to clipboard"}
	case session.CopiedFallback:
		return notice{kind: noticeSuccess, text: "Copied via terminal clipboard"}
	case session.CopyNothing:
		return notice{kind: noticeInfo, text: "Nothing to copy yet"}
	default:
		text := "Clipboard unavailable"
		if hints := errors.GetAllHints(msg.err); len(hints) > 0 {
			text += ": " + hints[0]
		}
		return notice{kind: noticeError, text: text}
	}
}

func (m Model) View() string {
	if m.quit {
		return ""
	}
	state := m.ctrl.State()
	cfg := m.ctrl.Config()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Password Generator"))
	b.WriteString("\n")

	if state.CurrentPassword == "" {
		b.WriteString(passwordStyle.Foreground(render.ColorMuted).Render("press enter to generate"))
	} else {
		b.WriteString(passwordStyle.Render(state.CurrentPassword.String()))
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %d %s\n", labelStyle.Render("Length"), state.PasswordLength,
		labelStyle.Render(fmt.Sprintf("(%d-%d)", cfg.Length.Min, cfg.Length.Max)))
	if tier, err := m.ctrl.Strength(); err == nil {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Strength"), render.Strength(tier, cfg.MaxVisualWeight()))
	}
	b.WriteString("\n")

	for i, class := range cfg.ClassNames() {
		mark := "[ ]"
		if state.Options.Has(class) {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "%s %d %s\n", mark, i+1, classLabel(class))
	}

	if len(state.History) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("History"))
		b.WriteString("\n")
		for _, entry := range state.History {
			fmt.Fprintf(&b, "  %s  %s\n",
				labelStyle.Render(entry.GeneratedAt.Local().Format(domain.ClockFormat)),
				entry.Password)
		}
	}

	if m.notice.text != "" {
		b.WriteString("\n")
		switch m.notice.kind {
		case noticeSuccess:
			b.WriteString(successStyle.Render(m.notice.text))
		case noticeError:
			b.WriteString(errorStyle.Render(m.notice.text))
		default:
			b.WriteString(m.notice.text)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func classLabel(class domain.CharacterClass) string {
	r := []rune(string(class))
	if len(r) == 0 {
		return ""
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
