package state

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetQuery updates the jump query and moves focus to its best match. The
// items themselves are never filtered. Clearing the query restores the focus
// held before typing started.
func (g *Grid) SetQuery(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(g.Query)
	g.Query = query
	runes := []rune(g.Query)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	g.QueryCursor = cursor
	if trimmed != "" {
		if prevTrimmed == "" {
			g.LastCursor = g.Cursor
		}
		if idx := BestMatchIndex(g.Items, trimmed); idx >= 0 {
			g.Cursor = idx
		}
		return
	}
	if prevTrimmed != "" {
		if g.LastCursor >= 0 && g.LastCursor < len(g.Items) {
			g.Cursor = g.LastCursor
		}
		g.LastCursor = -1
	}
}

// CommitQuery drops the query but keeps the focus it produced.
func (g *Grid) CommitQuery() {
	g.Query = ""
	g.QueryCursor = 0
	g.LastCursor = -1
}

// QueryCursorPos returns the rune offset of the query cursor.
func (g *Grid) QueryCursorPos() int {
	runes := []rune(g.Query)
	if g.QueryCursor < 0 {
		return 0
	}
	if g.QueryCursor > len(runes) {
		return len(runes)
	}
	return g.QueryCursor
}

// InsertQueryText inserts text into the query at the cursor position.
func (g *Grid) InsertQueryText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(g.Query)
	pos := g.QueryCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	g.SetQuery(string(updated), pos+len(insert))
	return true
}

// DeleteQueryRuneBackward deletes a rune before the query cursor.
func (g *Grid) DeleteQueryRuneBackward() bool {
	runes := []rune(g.Query)
	pos := g.QueryCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	g.SetQuery(string(updated), pos-1)
	return true
}

// DeleteQueryWordBackward deletes the word preceding the cursor.
func (g *Grid) DeleteQueryWordBackward() bool {
	runes := []rune(g.Query)
	pos := g.QueryCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	updated := append(runes[:i], runes[pos:]...)
	g.SetQuery(string(updated), i)
	return true
}

// BestMatchIndex returns the best index for the query among the provided
// items: exact label or id, then label prefix, id prefix, substring, and
// finally the closest fuzzy match on labels.
func BestMatchIndex(items []Item, query string) int {
	trimmed := strings.TrimSpace(query)
	if len(items) == 0 {
		return -1
	}
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, item := range items {
		if strings.EqualFold(item.Label, trimmed) || strings.EqualFold(item.ID, trimmed) {
			return i
		}
	}
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Label), lower) {
			return i
		}
	}
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.ID), lower) {
			return i
		}
	}
	for i, item := range items {
		if strings.Contains(strings.ToLower(item.ID), lower) ||
			strings.Contains(strings.ToLower(item.Label), lower) {
			return i
		}
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}
