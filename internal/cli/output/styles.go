package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles shared by commands.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style
	Path    lipgloss.Style
	Kind    lipgloss.Style
}

// NewStyles creates styles bound to lg, so color is dropped when its output
// is not a terminal.
func NewStyles(lg *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: lg.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2: lg.NewStyle().Bold(true).Underline(true),
		Bold:    lg.NewStyle().Bold(true),
		Success: lg.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lg.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   lg.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Info:    lg.NewStyle().Foreground(lipgloss.Color("14")),
		Muted:   lg.NewStyle().Foreground(lipgloss.Color("8")),
		Path:    lg.NewStyle().Foreground(lipgloss.Color("14")),
		Kind:    lg.NewStyle().Foreground(lipgloss.Color("13")),
	}
}
