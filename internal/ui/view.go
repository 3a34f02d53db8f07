package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/menagerie/internal/render"
	uistate "github.com/atomicstack/menagerie/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

const (
	detailPanelMinWidth = 40  // minimum cols for the side panel; below this no split
	detailPanelFraction = 0.6 // fraction of total width given to the side panel
	defaultLayoutWidth  = 80  // used until the terminal reports its size
	gridHeaderRows      = 1

	gridHeader     = "🐾 Animaux"
	loadingText    = "Chargement…"
	emptyText      = "(aucun animal)"
	artLoadingText = "Chargement de l'image…"
)

// View implements tea.Model.
func (m *Model) View() string {
	bottom := m.bottomLines()
	var top string
	if m.hasSideDetail() {
		top = m.viewSideBySide(len(bottom))
	} else {
		top = m.viewVertical(len(bottom))
	}
	return top + "\n" + strings.Join(bottom, "\n")
}

// viewSideBySide renders the grid on the left and the detail panel on the
// right, both filling the space above the bottom bar.
func (m *Model) viewSideBySide(bottomRows int) string {
	gridW := m.gridColumnWidth()
	panelH := m.height - bottomRows
	if m.height <= 0 {
		panelH = 0
	}

	left := m.gridLines(gridW)
	right := m.renderDetailPanel(m.detailPanelWidth(), panelH)
	if panelH <= 0 {
		panelH = strings.Count(right, "\n") + 1
	}
	if len(left) > panelH {
		left = left[:panelH]
	}
	for len(left) < panelH {
		left = append(left, "")
	}
	for i, row := range left {
		left[i] = fitWidth(row, gridW)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(left, "\n"), right)
}

// viewVertical stacks the grid above a full width detail panel.
func (m *Model) viewVertical(bottomRows int) string {
	width := m.layoutWidth()
	left := m.gridLines(width)
	for i, row := range left {
		left[i] = fitWidth(row, width)
	}
	panelH := 0
	if m.height > 0 {
		panelH = m.height - bottomRows - len(left)
		if panelH < 3 {
			panelH = 3
		}
	}
	return strings.Join(left, "\n") + "\n" + m.renderDetailPanel(width, panelH)
}

func (m *Model) gridLines(width int) []string {
	lines := make([]string, 0, len(m.grid.Items)+gridHeaderRows)
	lines = append(lines, paint(styles.Header, gridHeader))
	if len(m.grid.Items) == 0 {
		if m.loading {
			lines = append(lines, paint(styles.Loading, loadingText))
		} else {
			lines = append(lines, paint(styles.Info, emptyText))
		}
		return lines
	}
	start, visible := m.grid.Visible(m.maxVisibleItems())
	for i := range visible {
		idx := start + i
		if idx >= len(m.surface.buttons) {
			break
		}
		lines = append(lines, m.buildButtonLine(m.surface.buttons[idx], idx, width))
	}
	return lines
}

// buildButtonLine renders one button. Focus is shown with the highlighted
// row; the selected button carries a filled marker.
func (m *Model) buildButtonLine(b render.Button, idx, width int) string {
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if b.Active {
		lineStyle = styles.ActiveItem
	}
	if idx == m.grid.Cursor {
		lineStyle = styles.FocusedItem
		indicatorStyle = styles.FocusedItemIndicator
	}
	digit := " "
	if idx < 9 {
		digit = fmt.Sprintf("%d", idx+1)
	}
	mark := " "
	if b.Active {
		mark = "●"
	}
	text := fmt.Sprintf(" %s %s %s %s", digit, mark, b.Emoji, b.Label)
	if width > 1 {
		text = fitWidth(text, width-1)
	}
	return paint(indicatorStyle, "▌") + paint(lineStyle, text)
}

// renderDetailPanel draws the bordered detail box with exactly height rows
// and totalWidth columns. A non-positive height sizes the box to its content.
func (m *Model) renderDetailPanel(totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)

	innerW := totalWidth - 2
	if innerW < 1 {
		innerW = 1
	}
	panel := m.surface.panel
	content := m.detailContent(panel, innerW)

	innerH := height - 2
	if height <= 0 {
		innerH = len(content)
	}
	if innerH < 1 {
		innerH = 1
	}
	m.detail.Width = innerW
	m.detail.Height = innerH
	m.detail.SetContent(strings.Join(content, "\n"))

	offset := m.detail.YOffset
	if offset > len(content)-innerH {
		offset = len(content) - innerH
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + innerH
	if end > len(content) {
		end = len(content)
	}
	visible := content[offset:end]

	scrollInfo := ""
	if len(content) > innerH {
		scrollInfo = fmt.Sprintf(" %d/%d ", end, len(content))
	}
	titleSeg := " " + strings.TrimSpace(panel.Icon+" "+panel.Title) + " "
	dashes := totalWidth - 4 - lipgloss.Width(titleSeg) - lipgloss.Width(scrollInfo)
	if dashes < 0 {
		scrollInfo = ""
		dashes = totalWidth - 4 - lipgloss.Width(titleSeg)
	}
	if dashes < 0 {
		titleSeg = " … "
		dashes = totalWidth - 4 - lipgloss.Width(titleSeg)
	}
	if dashes < 0 {
		dashes = 0
	}
	topLine := paint(styles.PanelBorder, tlc+hz) +
		paint(styles.PanelTitle, titleSeg) +
		paint(styles.PanelBorder, strings.Repeat(hz, dashes)) +
		paint(styles.PanelScroll, scrollInfo) +
		paint(styles.PanelBorder, hz+trc)
	bottomLine := paint(styles.PanelBorder, blc+strings.Repeat(hz, innerW)+brc)

	rows := make([]string, 0, innerH+2)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		row := ""
		if i < len(visible) {
			row = visible[i]
		}
		rows = append(rows, paint(styles.PanelBorder, vt)+fitWidth(row, innerW)+paint(styles.PanelBorder, vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}

// detailContent lays out the body of the detail panel, already wrapped to
// width. Art lines are passed through with their escapes intact.
func (m *Model) detailContent(panel render.Panel, width int) []string {
	lines := make([]string, 0, 16)
	switch panel.Kind {
	case render.PanelAnimal:
		r := panel.Animal
		if m.art.id == r.ID {
			switch {
			case m.art.loading:
				lines = append(lines, paint(styles.Loading, artLoadingText), "")
			case len(m.art.lines) > 0 && !m.art.failed:
				lines = append(lines, m.art.lines...)
				lines = append(lines, "")
			}
		}
		lines = append(lines, paint(styles.Heading, render.DescriptionHeading))
		lines = append(lines, wrapBody(r.Description, width)...)
		lines = append(lines, "")
		lines = append(lines, paint(styles.Heading, render.HabitatHeading))
		lines = append(lines, wrapBody(r.Habitat, width)...)
	case render.PanelNotFound:
		lines = append(lines, paint(styles.NotFound, panel.Message))
		lines = append(lines, wrapBody(fmt.Sprintf("« %s »", panel.Animal.ID), width)...)
	default:
		lines = append(lines, wrapBody(panel.Message, width)...)
	}
	return lines
}

func wrapBody(text string, width int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{""}
	}
	wrapped := strings.Split(wordwrap.String(text, width), "\n")
	for i, line := range wrapped {
		wrapped[i] = paint(styles.PanelBody, line)
	}
	return wrapped
}

// bottomLines returns the status line followed by the key help, if shown.
func (m *Model) bottomLines() []string {
	status := ""
	switch {
	case m.jumping:
		status = m.jumpPrompt()
	case m.loading && len(m.grid.Items) > 0:
		status = paint(styles.Loading, loadingText)
	}
	lines := []string{fitWidth(status, m.layoutWidth())}
	if m.showFooter || m.help.ShowAll {
		m.help.Width = m.layoutWidth()
		for _, line := range strings.Split(m.help.View(m.keys), "\n") {
			lines = append(lines, fitWidth(line, m.layoutWidth()))
		}
	}
	return lines
}

func (m *Model) layoutWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultLayoutWidth
}

// detailPanelWidth returns the width of the side panel, or 0 when the
// terminal is too narrow to split.
func (m *Model) detailPanelWidth() int {
	w := int(float64(m.layoutWidth()) * detailPanelFraction)
	if w < detailPanelMinWidth {
		return 0
	}
	return w
}

func (m *Model) hasSideDetail() bool {
	return m.detailPanelWidth() > 0
}

func (m *Model) gridColumnWidth() int {
	return m.layoutWidth() - m.detailPanelWidth()
}

func (m *Model) detailInnerWidth() int {
	if w := m.detailPanelWidth(); w > 0 {
		return w - 2
	}
	return m.layoutWidth() - 2
}

// maxVisibleItems returns how many buttons fit, or -1 when the height is
// unknown.
func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	remain := m.height - len(m.bottomLines()) - gridHeaderRows
	if !m.hasSideDetail() {
		remain /= 2
	}
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) itemAt(idx int) (uistate.Item, bool) {
	if idx < 0 || idx >= len(m.grid.Items) {
		return uistate.Item{}, false
	}
	return m.grid.Items[idx], true
}

// buttonAt maps a screen cell to a button index.
func (m *Model) buttonAt(x, y int) (int, bool) {
	if m.hasSideDetail() && x >= m.gridColumnWidth() {
		return 0, false
	}
	start, visible := m.grid.Visible(m.maxVisibleItems())
	row := y - gridHeaderRows
	if row < 0 || row >= len(visible) {
		return 0, false
	}
	return start + row, true
}

// inDetail reports whether a screen cell lies inside the detail panel.
func (m *Model) inDetail(x, y int) bool {
	if m.hasSideDetail() {
		return x >= m.gridColumnWidth()
	}
	_, visible := m.grid.Visible(m.maxVisibleItems())
	rows := len(visible)
	if rows == 0 {
		rows = 1
	}
	return y >= gridHeaderRows+rows
}

// fitWidth truncates or pads s to exactly width visible columns.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w > width {
		s = truncate.StringWithTail(s, uint(width-1), "…")
		w = ansi.StringWidth(s)
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func paint(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}
