package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("172"))

	DateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("137"))

	dayTypeStyle = lipgloss.NewStyle().
			Italic(true).
			Bold(true).
			Foreground(lipgloss.Color("94"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("70"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// DayType renders a day type the way the web pages show it: lower case, italic.
func DayType(s string) string {
	return dayTypeStyle.Render(strings.ToLower(s))
}
