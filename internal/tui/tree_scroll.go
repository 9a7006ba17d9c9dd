package tui

// Scrolling and navigation methods for TreeView.

// selectPrevious moves selection to the previous selectable line.
func (t *TreeView) selectPrevious() {
	if len(t.renderedLines) == 0 {
		return
	}

	currentIdx := t.lineIndex(t.selected)
	for i := currentIdx - 1; i >= 0; i-- {
		if t.renderedLines[i].selectable() {
			t.selected = t.renderedLines[i].key()
			return
		}
	}
}

// selectNext moves selection to the next selectable line.
func (t *TreeView) selectNext() {
	if len(t.renderedLines) == 0 {
		return
	}

	currentIdx := t.lineIndex(t.selected)
	for i := currentIdx + 1; i < len(t.renderedLines); i++ {
		if t.renderedLines[i].selectable() {
			t.selected = t.renderedLines[i].key()
			return
		}
	}
}

// ensureSelectedVisible scrolls to keep the selected line on screen.
func (t *TreeView) ensureSelectedVisible() {
	selectedIdx := t.lineIndex(t.selected)
	if selectedIdx < 0 {
		return
	}

	if selectedIdx < t.scrollOffset {
		t.scrollOffset = selectedIdx
	} else if selectedIdx >= t.scrollOffset+t.visibleRows {
		t.scrollOffset = selectedIdx - t.visibleRows + 1
	}
}

// scrollUp scrolls up by n lines.
func (t *TreeView) scrollUp(n int) {
	t.scrollOffset -= n
	if t.scrollOffset < 0 {
		t.scrollOffset = 0
	}
}

// scrollDown scrolls down by n lines.
func (t *TreeView) scrollDown(n int) {
	maxOffset := len(t.renderedLines) - t.visibleRows
	if maxOffset < 0 {
		maxOffset = 0
	}
	t.scrollOffset += n
	if t.scrollOffset > maxOffset {
		t.scrollOffset = maxOffset
	}
}

// scrollToTop scrolls to the top and selects the first line.
func (t *TreeView) scrollToTop() {
	t.scrollOffset = 0
	for _, line := range t.renderedLines {
		if line.selectable() {
			t.selected = line.key()
			break
		}
	}
}

// scrollToBottom scrolls to the bottom and selects the last line.
func (t *TreeView) scrollToBottom() {
	t.scrollOffset = len(t.renderedLines) - t.visibleRows
	if t.scrollOffset < 0 {
		t.scrollOffset = 0
	}
	for i := len(t.renderedLines) - 1; i >= 0; i-- {
		if t.renderedLines[i].selectable() {
			t.selected = t.renderedLines[i].key()
			break
		}
	}
}
