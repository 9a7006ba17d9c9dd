package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessera-labs/trailhead/internal/roadmap"
)

// lineKind identifies what a rendered line points at.
type lineKind int

const (
	linePhase lineKind = iota
	lineTask
	lineSubtask
	lineHint
)

// renderedLine is a single line in the tree with its associated node.
type renderedLine struct {
	kind      lineKind
	phaseID   string
	taskID    string
	subtaskID string
	text      string
}

// key returns a stable identity for selection across rebuilds.
func (l renderedLine) key() string {
	switch l.kind {
	case linePhase:
		return "p:" + l.phaseID
	case lineTask:
		return "t:" + l.taskID
	case lineSubtask:
		return "s:" + l.subtaskID
	default:
		return ""
	}
}

func (l renderedLine) selectable() bool {
	return l.kind != lineHint
}

// TreeView renders the roadmap tree with selection and scrolling.
type TreeView struct {
	phases   []roadmap.PhaseNode
	selected string
	width    int
	height   int

	scrollOffset int
	visibleRows  int

	renderedLines []renderedLine

	headerStyle   lipgloss.Style
	nodeStyle     lipgloss.Style
	selectedStyle lipgloss.Style
	branchStyle   lipgloss.Style
	collapseStyle lipgloss.Style
	badgeStyle    lipgloss.Style
	hintStyle     lipgloss.Style
}

// NewTreeView creates an empty tree view.
func NewTreeView() *TreeView {
	return &TreeView{
		visibleRows: 20,

		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("7")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("240")),

		nodeStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),

		selectedStyle: lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Bold(true),

		branchStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		collapseStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),

		badgeStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("213")).
			Bold(true),

		hintStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true),
	}
}

// Update handles navigation input.
func (t *TreeView) Update(msg tea.Msg) (*TreeView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			t.selectPrevious()
			t.ensureSelectedVisible()
		case "down", "j":
			t.selectNext()
			t.ensureSelectedVisible()
		case "pgup", "ctrl+u":
			t.scrollUp(t.visibleRows / 2)
		case "pgdown", "ctrl+d":
			t.scrollDown(t.visibleRows / 2)
		case "home", "g":
			t.scrollToTop()
		case "end", "G":
			t.scrollToBottom()
		}

	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.height = msg.Height
		t.visibleRows = msg.Height - 8
		if t.visibleRows < 5 {
			t.visibleRows = 5
		}
	}

	return t, nil
}

// View renders the visible slice of the tree.
func (t *TreeView) View() string {
	if len(t.phases) == 0 {
		return t.nodeStyle.Render("No roadmap loaded")
	}

	var b strings.Builder

	header := fmt.Sprintf("Roadmap (%d phases)", len(t.phases))
	b.WriteString(t.headerStyle.Render(header))
	b.WriteString("\n\n")

	totalLines := len(t.renderedLines)
	if totalLines == 0 {
		b.WriteString(t.nodeStyle.Render("Nothing to display"))
		return b.String()
	}

	if t.scrollOffset < 0 {
		t.scrollOffset = 0
	}
	maxOffset := totalLines - t.visibleRows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if t.scrollOffset > maxOffset {
		t.scrollOffset = maxOffset
	}

	endIdx := t.scrollOffset + t.visibleRows
	if endIdx > totalLines {
		endIdx = totalLines
	}

	for i := t.scrollOffset; i < endIdx; i++ {
		line := t.renderedLines[i]
		if line.selectable() && line.key() == t.selected {
			b.WriteString(t.selectedStyle.Render(line.text))
		} else {
			b.WriteString(line.text)
		}
		b.WriteString("\n")
	}

	if totalLines > t.visibleRows {
		b.WriteString("\n")
		b.WriteString(t.renderScrollInfo(totalLines))
	}

	return b.String()
}

// SetPhases replaces the tree contents, keeping selection where possible.
func (t *TreeView) SetPhases(phases []roadmap.PhaseNode) {
	t.phases = phases
	t.buildRenderedLines()

	if t.selected != "" && t.lineIndex(t.selected) >= 0 {
		t.ensureSelectedVisible()
		return
	}
	for _, line := range t.renderedLines {
		if line.selectable() {
			t.selected = line.key()
			break
		}
	}
	t.ensureSelectedVisible()
}

// Selected returns the line under the cursor, or nil when the tree is empty.
func (t *TreeView) Selected() *renderedLine {
	idx := t.lineIndex(t.selected)
	if idx < 0 {
		return nil
	}
	line := t.renderedLines[idx]
	return &line
}

// SelectedTaskID resolves the task the cursor is on or within. For a subtask
// line this is the parent task; for a phase line it is empty.
func (t *TreeView) SelectedTaskID() string {
	line := t.Selected()
	if line == nil {
		return ""
	}
	return line.taskID
}

func (t *TreeView) lineIndex(key string) int {
	for i, line := range t.renderedLines {
		if line.selectable() && line.key() == key {
			return i
		}
	}
	return -1
}

// buildRenderedLines flattens the expanded tree into display lines.
func (t *TreeView) buildRenderedLines() {
	t.renderedLines = t.renderedLines[:0]

	for _, phase := range t.phases {
		indicator := "[+] "
		if phase.Expanded {
			indicator = "[-] "
		}
		text := t.collapseStyle.Render(indicator) + t.nodeStyle.Bold(true).Render(phase.Name)
		if !phase.Expanded && len(phase.Tasks) > 0 {
			text += t.collapseStyle.Render(fmt.Sprintf(" (%d hidden)", len(phase.Tasks)))
		}
		t.renderedLines = append(t.renderedLines, renderedLine{
			kind:    linePhase,
			phaseID: phase.ID,
			text:    text,
		})

		if !phase.Expanded {
			continue
		}

		for _, task := range phase.Tasks {
			t.buildTaskLines(phase.ID, task)
		}
	}
}

func (t *TreeView) buildTaskLines(phaseID string, task roadmap.TaskNode) {
	indicator := "[+] "
	if task.Expanded {
		indicator = "[-] "
	}

	text := "  " + t.branchStyle.Render("|-- ") +
		t.collapseStyle.Render(indicator) +
		t.nodeStyle.Render(truncate(task.Name, 40))
	if task.NewAISubtask {
		text += " " + t.badgeStyle.Render("* new")
	}
	if !task.Expanded && len(task.Subtasks) > 0 {
		text += t.collapseStyle.Render(fmt.Sprintf(" (%d hidden)", len(task.Subtasks)))
	}
	t.renderedLines = append(t.renderedLines, renderedLine{
		kind:    lineTask,
		phaseID: phaseID,
		taskID:  task.ID,
		text:    text,
	})

	if !task.Expanded {
		return
	}

	for _, sub := range task.Subtasks {
		display := sub.Status.Display()
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color(display.Color)).Render(display.Icon)
		line := "      " + icon + " " + t.nodeStyle.Render(truncate(sub.Name, 50))
		t.renderedLines = append(t.renderedLines, renderedLine{
			kind:      lineSubtask,
			phaseID:   phaseID,
			taskID:    task.ID,
			subtaskID: sub.ID,
			text:      line,
		})
	}

	if len(task.Subtasks) == 0 && task.SubtaskSuggestion != "" {
		t.renderedLines = append(t.renderedLines, renderedLine{
			kind:    lineHint,
			phaseID: phaseID,
			taskID:  task.ID,
			text:    "      " + t.hintStyle.Render("Suggestion: "+truncate(task.SubtaskSuggestion, 60)),
		})
	}
}

func (t *TreeView) renderScrollInfo(totalLines int) string {
	startLine := t.scrollOffset + 1
	endLine := t.scrollOffset + t.visibleRows
	if endLine > totalLines {
		endLine = totalLines
	}
	return t.branchStyle.Render(fmt.Sprintf("Lines %d-%d of %d", startLine, endLine, totalLines))
}

// truncate shortens a string to at most n runes, with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
