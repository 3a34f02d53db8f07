package state

// Grid tracks keyboard focus over the button grid together with the jump
// query and viewport. Focus is independent of the selection: moving the
// cursor never selects anything.
type Grid struct {
	Items          []Item
	Cursor         int
	ViewportOffset int
	Query          string
	QueryCursor    int
	LastCursor     int
}

// NewGrid constructs a grid focused on the first item.
func NewGrid(items []Item) *Grid {
	g := &Grid{LastCursor: -1}
	g.UpdateItems(items)
	return g
}

// UpdateItems replaces the items, keeping focus on the same id when it is
// still present.
func (g *Grid) UpdateItems(items []Item) {
	focused := ""
	if item, ok := g.Current(); ok {
		focused = item.ID
	}
	g.Items = CloneItems(items)
	if idx := g.IndexOf(focused); idx >= 0 {
		g.Cursor = idx
	}
	if g.Cursor >= len(g.Items) {
		g.Cursor = len(g.Items) - 1
	}
	if g.Cursor < 0 {
		g.Cursor = 0
	}
	if g.ViewportOffset > len(g.Items)-1 {
		g.ViewportOffset = 0
	}
}

// IndexOf returns the first index carrying id, or -1.
func (g *Grid) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range g.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the focused item.
func (g *Grid) Current() (Item, bool) {
	if g == nil || g.Cursor < 0 || g.Cursor >= len(g.Items) {
		return Item{}, false
	}
	return g.Items[g.Cursor], true
}

// Focus moves the cursor to idx when it is in range.
func (g *Grid) Focus(idx int) bool {
	if idx < 0 || idx >= len(g.Items) {
		return false
	}
	old := g.Cursor
	g.Cursor = idx
	return old != idx
}
