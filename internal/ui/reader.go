package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quotedeck/internal/library"
)

// renderQuote draws the full-screen quote card, horizontally shifted by
// offset columns while the slide animation settles. A book-kind author is
// itself the source, so the work line is dropped.
func renderQuote(q library.Quote, favorite, book bool, offset, width, height int) string {
	textWidth := width - 16
	if textWidth < 20 {
		textWidth = 20
	}

	text := quoteTextStyle.Width(textWidth).Render("“" + q.Text + "”")

	attribution := authorStyle.Render(q.Author)
	if !book {
		work := q.Work
		if q.Year > 0 {
			work = fmt.Sprintf("%s (%d)", q.Work, q.Year)
		}
		attribution += attributionStyle.Render(" — " + work)
	}

	var markers []string
	if favorite {
		markers = append(markers, favoriteStyle.Render("★ favorite"))
	}
	if q.Satire {
		markers = append(markers, satireStyle.Render("satire"))
	}

	body := text + "\n\n" + attribution
	if len(markers) > 0 {
		body += "\n" + strings.Join(markers, "  ")
	}

	card := quoteStyle.Render(body)
	centered := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
	return shift(centered, offset, width)
}

// shift slides rendered content left or right by n columns, clipping at the
// screen edge. Positive n shifts right.
func shift(content string, n, width int) string {
	if n == 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if n > 0 {
			lines[i] = strings.Repeat(" ", n) + line
			if w := lipgloss.Width(lines[i]); w > width {
				lines[i] = truncateANSI(lines[i], width)
			}
		} else {
			lines[i] = trimLeadingCols(line, -n)
		}
	}
	return strings.Join(lines, "\n")
}

// trimLeadingCols drops up to n leading spaces; styled content is left
// alone once non-space text begins.
func trimLeadingCols(line string, n int) string {
	for i := 0; i < n && len(line) > 0 && line[0] == ' '; i++ {
		line = line[1:]
	}
	return line
}

// truncateANSI is a conservative width clip: it only trims plain trailing
// spaces so escape sequences are never cut mid-run.
func truncateANSI(line string, width int) string {
	for lipgloss.Width(line) > width && len(line) > 0 && line[len(line)-1] == ' ' {
		line = line[:len(line)-1]
	}
	return line
}

// renderStatusBar draws the bottom bar: queue name, position and flash.
func renderStatusBar(name string, pos, total, width int, satire bool, flash string) string {
	left := statusAccentStyle.Render(" " + name + " ")
	position := "—"
	if pos > 0 {
		position = fmt.Sprintf("%d / %d", pos, total)
	}
	mid := statusStyle.Render(" " + position + " ")
	if !satire {
		mid += statusStyle.Render("[no satire] ")
	}
	if flash != "" {
		mid += statusStyle.Render(flash + " ")
	}
	right := statusStyle.Render("? help ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + mid + statusStyle.Render(strings.Repeat(" ", gap)) + right
}
