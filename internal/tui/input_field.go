package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SubtaskSubmittedMsg is sent when the user submits a new subtask name.
type SubtaskSubmittedMsg struct {
	TaskID string
	Name   string
}

// InputCancelledMsg is sent when the input is dismissed.
type InputCancelledMsg struct{}

// InputField is a text input for naming a new subtask.
type InputField struct {
	input  textinput.Model
	taskID string
	width  int
}

// NewInputField creates an input field targeting the given task.
func NewInputField(taskID string) *InputField {
	ti := textinput.New()
	ti.Placeholder = "Subtask name, Enter to add..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	return &InputField{
		input:  ti,
		taskID: taskID,
		width:  80,
	}
}

// SetWidth sets the width of the input field.
func (f *InputField) SetWidth(width int) {
	f.width = width
	f.input.Width = width - 4
}

// Update handles messages for the input field.
func (f *InputField) Update(msg tea.Msg) (*InputField, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			text := f.input.Value()
			f.input.Reset()
			taskID := f.taskID
			return f, func() tea.Msg {
				return SubtaskSubmittedMsg{TaskID: taskID, Name: text}
			}
		case "esc":
			return f, func() tea.Msg {
				return InputCancelledMsg{}
			}
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// View renders the input field.
func (f *InputField) View() string {
	promptStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(f.width - 2)

	prompt := promptStyle.Render("> ")
	return boxStyle.Render(prompt + f.input.View())
}

// Focus sets focus on the input field.
func (f *InputField) Focus() tea.Cmd {
	return f.input.Focus()
}
