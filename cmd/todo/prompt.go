package main

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var errPromptCanceled = errors.New("canceled")

// promptModel reads a single line, masking it when secret.
type promptModel struct {
	input    textinput.Model
	done     bool
	canceled bool
}

func newPromptModel(label string, secret bool) promptModel {
	input := textinput.New()
	input.Prompt = label + ": "
	input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))
	input.CharLimit = 256
	if secret {
		input.EchoMode = textinput.EchoPassword
		input.EchoCharacter = '•'
	}
	input.Focus()
	return promptModel{input: input}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.canceled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	return m.input.View() + "\n" + faintStyle.Render("(esc to cancel)") + "\n"
}

func (m promptModel) Value() string {
	return m.input.Value()
}

// prompt runs an inline prompt on in/out and returns the entered value.
func prompt(label string, secret bool, in io.Reader, out io.Writer) (string, error) {
	p := tea.NewProgram(newPromptModel(label, secret), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m := final.(promptModel)
	if m.canceled {
		return "", errPromptCanceled
	}
	if secret {
		return m.Value(), nil
	}
	return strings.TrimSpace(m.Value()), nil
}
