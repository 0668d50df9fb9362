package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quotedeck/internal/store"
)

// queuesView lists saved queues and prompts for a name when saving the
// current queue.
type queuesView struct {
	queues []store.SavedQueue
	cursor int
	naming bool
	input  textinput.Model
}

func newQueuesView() queuesView {
	ti := textinput.New()
	ti.Placeholder = "queue name"
	ti.CharLimit = 60
	ti.Width = 40
	return queuesView{input: ti}
}

func (v *queuesView) setQueues(queues []store.SavedQueue) {
	v.queues = queues
	if v.cursor >= len(queues) {
		v.cursor = max(0, len(queues)-1)
	}
}

// beginNaming opens the save-as prompt.
func (v *queuesView) beginNaming() tea.Cmd {
	v.naming = true
	v.input.SetValue("")
	return v.input.Focus()
}

func (v *queuesView) update(msg tea.KeyMsg, cfg Config) tea.Cmd {
	if v.naming {
		switch msg.String() {
		case "enter":
			name := strings.TrimSpace(v.input.Value())
			v.naming = false
			v.input.Blur()
			if name != "" && cfg.SaveQueue != nil {
				return cfg.SaveQueue(name)
			}
			return nil
		case "esc":
			v.naming = false
			v.input.Blur()
			return nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "j", "down":
		if v.cursor < len(v.queues)-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
	case "enter":
		if v.cursor < len(v.queues) && cfg.RestoreQueue != nil {
			return cfg.RestoreQueue(v.queues[v.cursor].ID)
		}
	case "d":
		if v.cursor < len(v.queues) && cfg.DeleteQueue != nil {
			return cfg.DeleteQueue(v.queues[v.cursor].ID)
		}
	case "n":
		return v.beginNaming()
	}
	return nil
}

func (v *queuesView) view(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Saved Queues"))
	b.WriteString("\n")
	b.WriteString(rowStyle.Render("  enter restore · n save current · d delete · esc back"))
	b.WriteString("\n\n")

	if v.naming {
		b.WriteString("  Save current queue as:\n  ")
		b.WriteString(v.input.View())
		b.WriteString("\n\n")
	}

	if len(v.queues) == 0 {
		b.WriteString(rowStyle.Render("  no saved queues yet"))
		b.WriteString("\n")
		return b.String()
	}

	for i, q := range v.queues {
		line := fmt.Sprintf("  %s  %s(%d quotes, %s)",
			q.Name, strings.Repeat(" ", max(1, 24-len(q.Name))),
			len(q.QuoteIDs), q.CreatedAt.Format("2006-01-02"))
		if i == v.cursor && !v.naming {
			b.WriteString(selectedRowStyle.Render("▸" + line[1:]))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
