package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Text                  *lipgloss.Style
	Placeholder           *lipgloss.Style
	Chip                  *lipgloss.Style
	Trigger               *lipgloss.Style
	Cursor                *lipgloss.Style
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	MenuScroll            *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style
	Footer                *lipgloss.Style
}

var defaultStyles = Styles{
	Text: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	),
	Placeholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Chip: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("25")).Bold(true),
	),
	Trigger: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Background(lipgloss.Color("235")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Background(lipgloss.Color("235")),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	MenuScroll: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Background(lipgloss.Color("235")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
