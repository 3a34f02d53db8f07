package state

// Item is one focusable entry of the button grid.
type Item struct {
	ID    string
	Label string
	Emoji string
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
