package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessera-labs/trailhead/pkg/models"
)

// StatusChosenMsg is sent when the user picks a status from the menu.
type StatusChosenMsg struct {
	SubtaskID string
	Status    models.SubtaskStatus
}

// StatusMenuCancelledMsg is sent when the menu is dismissed.
type StatusMenuCancelledMsg struct{}

// StatusMenu offers the five subtask statuses for one subtask.
type StatusMenu struct {
	subtaskID   string
	subtaskName string
	cursor      int

	titleStyle    lipgloss.Style
	itemStyle     lipgloss.Style
	selectedStyle lipgloss.Style
	boxStyle      lipgloss.Style
}

// NewStatusMenu creates a menu for the given subtask, with the cursor on its
// current status.
func NewStatusMenu(subtaskID, subtaskName string, current models.SubtaskStatus) *StatusMenu {
	cursor := 0
	for i, s := range models.AllStatuses {
		if s == current {
			cursor = i
			break
		}
	}

	return &StatusMenu{
		subtaskID:   subtaskID,
		subtaskName: subtaskName,
		cursor:      cursor,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("7")),

		itemStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),

		selectedStyle: lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Bold(true),

		boxStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
	}
}

// Update handles menu navigation.
func (m *StatusMenu) Update(msg tea.Msg) (*StatusMenu, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(models.AllStatuses)-1 {
			m.cursor++
		}
	case "enter":
		chosen := models.AllStatuses[m.cursor]
		return m, func() tea.Msg {
			return StatusChosenMsg{SubtaskID: m.subtaskID, Status: chosen}
		}
	case "esc", "q":
		return m, func() tea.Msg {
			return StatusMenuCancelledMsg{}
		}
	}

	return m, nil
}

// View renders the menu.
func (m *StatusMenu) View() string {
	var b strings.Builder

	b.WriteString(m.titleStyle.Render("Set status: " + truncate(m.subtaskName, 40)))
	b.WriteString("\n")

	for i, status := range models.AllStatuses {
		display := status.Display()
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color(display.Color)).Render(display.Icon)
		line := icon + " " + display.Label
		if i == m.cursor {
			b.WriteString(m.selectedStyle.Render("> " + line))
		} else {
			b.WriteString(m.itemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	return m.boxStyle.Render(b.String())
}
