package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Loading              *lipgloss.Style
	Header               *lipgloss.Style
	Item                 *lipgloss.Style
	ItemIndicator        *lipgloss.Style
	FocusedItem          *lipgloss.Style
	FocusedItemIndicator *lipgloss.Style
	ActiveItem           *lipgloss.Style
	Info                 *lipgloss.Style
	Footer               *lipgloss.Style
	JumpPrompt           *lipgloss.Style
	Jump                 *lipgloss.Style
	Cursor               *lipgloss.Style
	PanelBorder          *lipgloss.Style
	PanelTitle           *lipgloss.Style
	PanelScroll          *lipgloss.Style
	PanelBody            *lipgloss.Style
	Heading              *lipgloss.Style
	NotFound             *lipgloss.Style
}

var defaultStyles = Styles{
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	FocusedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	FocusedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	ActiveItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	JumpPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Jump: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
	PanelBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	PanelTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	PanelScroll: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	PanelBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Heading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	),
	NotFound: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
