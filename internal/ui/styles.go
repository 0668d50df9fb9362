package ui

import "github.com/charmbracelet/lipgloss"

var (
	quoteStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#58a6ff")).
			Padding(1, 4)

	quoteTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c9d1d9")).
			Italic(true)

	attributionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8b949e"))

	authorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a5d6ff")).
			Bold(true)

	favoriteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d29922"))

	satireStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffa657"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b949e")).
			Background(lipgloss.Color("#161b22"))

	statusAccentStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#58a6ff")).
				Background(lipgloss.Color("#161b22")).
				Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#58a6ff")).
			Bold(true).
			Padding(0, 1)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#c9d1d9")).
				Background(lipgloss.Color("#1f6feb")).
				Bold(true)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b949e"))

	activeRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7ee787"))

	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f85149")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f85149"))
)
