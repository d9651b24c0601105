// Package tui provides the interactive confirmation prompt used by
// destructive commands.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"imgtag/internal/ports"
)

// ConfirmKeyMap defines key bindings for the confirmation prompt
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc", "ctrl+c"),
		key.WithHelp("n/esc", "cancel"),
	),
}

var (
	promptStyle = lipgloss.NewStyle().Bold(true)
	hintStyle   = lipgloss.NewStyle().Faint(true)
)

type confirmModel struct {
	prompt    string
	keys      ConfirmKeyMap
	confirmed bool
	done      bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Confirm):
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.Cancel):
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return promptStyle.Render(m.prompt) + " " + hintStyle.Render("[y/n]") + "\n"
}

// Confirmer runs an inline bubbletea prompt for each question.
type Confirmer struct {
	Keys ConfirmKeyMap
}

var _ ports.Confirmer = (*Confirmer)(nil)

// NewConfirmer creates a Confirmer with the default key bindings.
func NewConfirmer() *Confirmer {
	return &Confirmer{Keys: DefaultConfirmKeys}
}

// Confirm asks the user to approve the prompt and reports the answer.
func (c *Confirmer) Confirm(prompt string) (bool, error) {
	model := confirmModel{prompt: prompt, keys: c.Keys}
	p := tea.NewProgram(model)

	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	result, ok := final.(confirmModel)
	if !ok {
		return false, nil
	}
	return result.confirmed, nil
}
