package state

// MoveCursorUp moves focus up one item, wrapping to the last.
func (g *Grid) MoveCursorUp() bool {
	n := len(g.Items)
	if n == 0 {
		g.Cursor = 0
		return false
	}
	old := g.Cursor
	if g.Cursor > 0 {
		g.Cursor--
	} else {
		g.Cursor = n - 1
	}
	return old != g.Cursor
}

// MoveCursorDown moves focus down one item, wrapping to the first.
func (g *Grid) MoveCursorDown() bool {
	n := len(g.Items)
	if n == 0 {
		g.Cursor = 0
		return false
	}
	old := g.Cursor
	if g.Cursor < n-1 {
		g.Cursor++
	} else {
		g.Cursor = 0
	}
	return old != g.Cursor
}

// MoveCursorHome moves the cursor to the first item.
func (g *Grid) MoveCursorHome() bool {
	if len(g.Items) == 0 {
		g.Cursor = 0
		return false
	}
	old := g.Cursor
	g.Cursor = 0
	return old != g.Cursor
}

// MoveCursorEnd moves the cursor to the last item.
func (g *Grid) MoveCursorEnd() bool {
	n := len(g.Items)
	if n == 0 {
		g.Cursor = 0
		return false
	}
	old := g.Cursor
	g.Cursor = n - 1
	return old != g.Cursor
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (g *Grid) MoveCursorPageUp(maxVisible int) bool {
	return g.moveCursorBy(-g.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (g *Grid) MoveCursorPageDown(maxVisible int) bool {
	return g.moveCursorBy(g.pageSize(maxVisible))
}

func (g *Grid) moveCursorBy(delta int) bool {
	if len(g.Items) == 0 {
		g.Cursor = 0
		return false
	}
	old := g.Cursor
	if g.Cursor < 0 {
		g.Cursor = 0
	}
	g.Cursor += delta
	if g.Cursor < 0 {
		g.Cursor = 0
	}
	if g.Cursor >= len(g.Items) {
		g.Cursor = len(g.Items) - 1
	}
	return g.Cursor != old
}

func (g *Grid) pageSize(maxVisible int) int {
	total := len(g.Items)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (g *Grid) EnsureCursorVisible(maxVisible int) {
	if len(g.Items) == 0 {
		g.Cursor = 0
		g.ViewportOffset = 0
		return
	}
	if g.Cursor < 0 {
		g.Cursor = 0
	}
	if g.Cursor >= len(g.Items) {
		g.Cursor = len(g.Items) - 1
	}
	if maxVisible <= 0 {
		g.ViewportOffset = 0
		return
	}
	maxOffset := len(g.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if g.ViewportOffset > maxOffset {
		g.ViewportOffset = maxOffset
	}
	if g.ViewportOffset < 0 {
		g.ViewportOffset = 0
	}
	if g.Cursor < g.ViewportOffset {
		g.ViewportOffset = g.Cursor
	}
	upper := g.ViewportOffset + maxVisible - 1
	if g.Cursor > upper {
		g.ViewportOffset = g.Cursor - maxVisible + 1
		if g.ViewportOffset < 0 {
			g.ViewportOffset = 0
		}
		if g.ViewportOffset > maxOffset {
			g.ViewportOffset = maxOffset
		}
	}
}

// Visible returns the window of items starting at the viewport offset.
func (g *Grid) Visible(maxVisible int) (start int, items []Item) {
	if maxVisible <= 0 || len(g.Items) <= maxVisible {
		return 0, g.Items
	}
	start = g.ViewportOffset
	if start+maxVisible > len(g.Items) {
		start = len(g.Items) - maxVisible
	}
	if start < 0 {
		start = 0
	}
	return start, g.Items[start : start+maxVisible]
}
