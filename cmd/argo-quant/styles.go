package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)

	// HeaderStyle for table headers.
	HeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

	// CellStyle for table cells.
	CellStyle = lipgloss.NewStyle().Padding(0, 1)

	// GainStyle for non-negative returns.
	GainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// LossStyle for negative returns and failures.
	LossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	// BorderStyle for table borders.
	BorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// FormatPercent renders a fraction as a signed percentage, green for gains and red for losses.
func FormatPercent(value float64) string {
	text := fmt.Sprintf("%+.2f%%", value*100)

	if value < 0 {
		return LossStyle.Render(text)
	}

	return GainStyle.Render(text)
}
