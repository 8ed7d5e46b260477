package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
)

// maxToggleKeys is the number of digit keys available for class toggles.
const maxToggleKeys = 9

type keyMap struct {
	Shorter  key.Binding
	Longer   key.Binding
	Toggle   key.Binding
	Generate key.Binding
	Copy     key.Binding
	Clear    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// toggleBinding binds one digit per class, up to nine.
func toggleBinding(classCount int) key.Binding {
	if classCount > maxToggleKeys {
		classCount = maxToggleKeys
	}
	if classCount < 1 {
		return key.NewBinding(key.WithDisabled())
	}
	keys := make([]string, 0, classCount)
	for i := 1; i <= classCount; i++ {
		keys = append(keys, strconv.Itoa(i))
	}
	label := "1"
	if classCount > 1 {
		label = fmt.Sprintf("1-%d", classCount)
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, "toggle class"))
}

func defaultKeyMap(classCount int) keyMap {
	return keyMap{
		Shorter: key.NewBinding(
			key.WithKeys("left", "-", "h"),
			key.WithHelp("←/-", "shorter"),
		),
		Longer: key.NewBinding(
			key.WithKeys("right", "+", "=", "l"),
			key.WithHelp("→/+", "longer"),
		),
		Toggle: toggleBinding(classCount),
		Generate: key.NewBinding(
			key.WithKeys("enter", "g", " "),
			key.WithHelp("enter/g", "generate"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c", "y"),
			key.WithHelp("c", "copy"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear history"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.Copy, k.Toggle, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Shorter, k.Longer, k.Toggle},
		{k.Generate, k.Copy, k.Clear},
		{k.Help, k.Quit},
	}
}
