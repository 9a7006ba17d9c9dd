// Package tui is the terminal front end for the roadmap tracker. It renders
// the phase/task/subtask tree and routes keystrokes to the presenter.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessera-labs/trailhead/internal/roadmap"
	"github.com/tessera-labs/trailhead/pkg/models"
)

type mode int

const (
	modeTree mode = iota
	modeMenu
	modeInput
)

// App is the top-level bubbletea model.
type App struct {
	presenter *roadmap.Presenter
	tree      *TreeView
	menu      *StatusMenu
	input     *InputField

	mode   mode
	notice string
	width  int
	height int

	titleStyle  lipgloss.Style
	noticeStyle lipgloss.Style
	footerStyle lipgloss.Style
}

// NewApp creates the TUI over an already-refreshed presenter.
func NewApp(p *roadmap.Presenter) *App {
	tree := NewTreeView()
	tree.SetPhases(p.Tree())

	return &App{
		presenter: p,
		tree:      tree,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),

		noticeStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),

		footerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.tree.Update(msg)
		if a.input != nil {
			a.input.SetWidth(msg.Width)
		}
		return a, nil

	case StatusChosenMsg:
		a.presenter.ChangeStatus(msg.SubtaskID, msg.Status)
		a.menu = nil
		a.mode = modeTree
		a.syncTree()
		return a, nil

	case StatusMenuCancelledMsg:
		a.menu = nil
		a.mode = modeTree
		return a, nil

	case SubtaskSubmittedMsg:
		if err := a.presenter.CreateSubtask(msg.TaskID, msg.Name); err != nil {
			a.notice = err.Error()
			return a, nil
		}
		a.notice = ""
		a.input = nil
		a.mode = modeTree
		a.syncTree()
		return a, nil

	case InputCancelledMsg:
		a.notice = ""
		a.input = nil
		a.mode = modeTree
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case modeMenu:
		var cmd tea.Cmd
		a.menu, cmd = a.menu.Update(msg)
		return a, cmd

	case modeInput:
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit

	case "enter", " ", "space":
		a.activateSelection()
		return a, nil

	case "n":
		if taskID := a.tree.SelectedTaskID(); taskID != "" {
			a.input = NewInputField(taskID)
			a.input.SetWidth(a.width)
			a.mode = modeInput
			a.notice = ""
			return a, a.input.Focus()
		}
		return a, nil

	case "a":
		if taskID := a.tree.SelectedTaskID(); taskID != "" {
			if err := a.presenter.CreateInlineSubtask(taskID); err != nil {
				a.notice = err.Error()
				return a, nil
			}
			a.notice = ""
			a.syncTree()
		}
		return a, nil

	case "r":
		if err := a.presenter.Refresh(); err != nil {
			a.notice = "refresh failed, showing last known roadmap"
			return a, nil
		}
		a.notice = ""
		a.syncTree()
		return a, nil
	}

	var cmd tea.Cmd
	a.tree, cmd = a.tree.Update(msg)
	return a, cmd
}

// activateSelection toggles the node under the cursor, or opens the status
// menu for a subtask.
func (a *App) activateSelection() {
	line := a.tree.Selected()
	if line == nil {
		return
	}

	switch line.kind {
	case linePhase:
		a.presenter.TogglePhase(line.phaseID)
		a.syncTree()
	case lineTask:
		a.presenter.ToggleTask(line.taskID)
		a.syncTree()
	case lineSubtask:
		if sub := a.findSubtask(line.subtaskID); sub != nil {
			a.menu = NewStatusMenu(sub.ID, sub.Name, sub.Status)
			a.mode = modeMenu
		}
	}
}

func (a *App) findSubtask(subtaskID string) *models.Subtask {
	for _, phase := range a.presenter.Tree() {
		for _, task := range phase.Tasks {
			for i := range task.Subtasks {
				if task.Subtasks[i].ID == subtaskID {
					return &task.Subtasks[i]
				}
			}
		}
	}
	return nil
}

func (a *App) syncTree() {
	a.tree.SetPhases(a.presenter.Tree())
}

// View implements tea.Model.
func (a *App) View() string {
	var body string
	switch a.mode {
	case modeMenu:
		body = a.tree.View() + "\n" + a.menu.View()
	case modeInput:
		body = a.tree.View() + "\n" + a.input.View()
	default:
		body = a.tree.View()
	}

	out := a.titleStyle.Render("Trailhead") + "\n" + body + "\n"
	if a.notice != "" {
		out += a.noticeStyle.Render(a.notice) + "\n"
	}
	out += a.footerStyle.Render(a.footerHint())
	return out
}

func (a *App) footerHint() string {
	switch a.mode {
	case modeMenu:
		return "[j/k] move  [enter] set status  [esc] cancel"
	case modeInput:
		return "[enter] add subtask  [esc] cancel"
	default:
		return "[j/k] navigate  [enter] expand/status  [n] new subtask  [a] quick add  [r] refresh  [q] quit"
	}
}

// Run starts the TUI event loop.
func Run(p *roadmap.Presenter) error {
	prog := tea.NewProgram(NewApp(p), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
