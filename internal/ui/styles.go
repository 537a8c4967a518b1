package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Header       lipgloss.Style
	JobTitle     lipgloss.Style
	JobInfo      lipgloss.Style
	Success      lipgloss.Style
	Error        lipgloss.Style
	Warning      lipgloss.Style
	Faint        lipgloss.Style
	Box          lipgloss.Style
	Spinner      lipgloss.Style
	StageStart   lipgloss.Style
	StageDL      lipgloss.Style
	StageExtract lipgloss.Style
}

func defaultStyles() Styles {
	base := lipgloss.NewStyle()
	// Amber accent with a cool cyan for the active download stage.
	return Styles{
		Title:        base.Bold(true).Foreground(lipgloss.Color("#F97316")),
		Subtitle:     base.Faint(true),
		Header:       base.Bold(true),
		JobTitle:     base.Foreground(lipgloss.Color("#9CA3AF")),
		JobInfo:      base.Foreground(lipgloss.Color("#E5E7EB")),
		Success:      base.Foreground(lipgloss.Color("#16A34A")),
		Error:        base.Foreground(lipgloss.Color("#DC2626")),
		Warning:      base.Foreground(lipgloss.Color("#EAB308")),
		Faint:        base.Faint(true),
		Box:          base.Padding(0, 1),
		Spinner:      base.Foreground(lipgloss.Color("#FB923C")),
		StageStart:   base.Foreground(lipgloss.Color("#FDBA74")),
		StageDL:      base.Foreground(lipgloss.Color("#0EA5E9")),
		StageExtract: base.Foreground(lipgloss.Color("#C026D3")),
	}
}
