package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"quotedeck/internal/roster"
)

// rosterView is the roster editor: reorder authors, drag the divider,
// toggle active state.
type rosterView struct {
	entries []roster.Entry
	cursor  int
	grabbed bool // cursor row moves with j/k while grabbed
}

func (r *rosterView) setEntries(entries []roster.Entry) {
	r.entries = entries
	if r.cursor >= len(entries) {
		r.cursor = max(0, len(entries)-1)
	}
}

// update returns a command when an edit must reach the engine.
func (r *rosterView) update(msg tea.KeyMsg, cfg Config) tea.Cmd {
	switch msg.String() {
	case "j", "down":
		if r.cursor < len(r.entries)-1 {
			if r.grabbed {
				from := r.cursor
				r.cursor++
				return cfg.RosterMove(from, r.cursor)
			}
			r.cursor++
		}
	case "k", "up":
		if r.cursor > 0 {
			if r.grabbed {
				from := r.cursor
				r.cursor--
				return cfg.RosterMove(from, r.cursor)
			}
			r.cursor--
		}
	case "m", "enter":
		r.grabbed = !r.grabbed
	case " ":
		if r.cursor < len(r.entries) {
			e := r.entries[r.cursor]
			if !e.Divider {
				return cfg.RosterToggle(e.AuthorID)
			}
		}
	}
	return nil
}

func (r *rosterView) view(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Author Roster"))
	b.WriteString("\n")
	b.WriteString(rowStyle.Render("  space toggle · m grab/drop · j/k move · esc back"))
	b.WriteString("\n\n")

	divSeen := false
	visible := r.entries
	top := 0
	maxRows := height - 5
	if maxRows > 0 && len(visible) > maxRows {
		top = r.cursor - maxRows/2
		if top < 0 {
			top = 0
		}
		if top+maxRows > len(visible) {
			top = len(visible) - maxRows
		}
		visible = visible[top : top+maxRows]
	}

	for i := range r.entries[:top] {
		if r.entries[i].Divider {
			divSeen = true
		}
	}
	for i, e := range visible {
		idx := top + i
		var line string
		switch {
		case e.Divider:
			divSeen = true
			line = dividerStyle.Render("  ──────── inactive below ────────")
		case !divSeen:
			line = activeRowStyle.Render("  ● " + e.Name)
		default:
			line = rowStyle.Render("  ○ " + e.Name)
		}
		if idx == r.cursor {
			marker := "▸"
			if r.grabbed {
				marker = "≡"
			}
			line = selectedRowStyle.Render(fmt.Sprintf("%s %s", marker, plain(e)))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func plain(e roster.Entry) string {
	if e.Divider {
		return "──────── inactive below ────────"
	}
	return "  " + e.Name
}
