package renderer

import "github.com/charmbracelet/lipgloss"

// Styles of the rendered text.
type Styles struct {
	Header lipgloss.Style
	Line   lipgloss.Style
	Total  lipgloss.Style
	Gain   lipgloss.Style
	Loss   lipgloss.Style
	Muted  lipgloss.Style
}

// DefaultStyles are the terminal styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Line:   lipgloss.NewStyle(),
		Total:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		Gain:   lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		Loss:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Italic(true),
	}
}

// PlainStyles render text as is.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Header: s, Line: s, Total: s, Gain: s, Loss: s, Muted: s}
}
