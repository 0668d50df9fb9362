package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"

	"quotedeck/internal/config"
	"quotedeck/internal/logging"
	"quotedeck/internal/store"
	"quotedeck/internal/widget"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#58a6ff")).
			Padding(0, 2).
			Width(60)

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c9d1d9")).
			Italic(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b949e"))

	favStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d29922"))
)

// quotedeck-widget renders the published queue snapshot: one quote per
// invocation, rotating through the queue. It never blocks on the app; it
// reads whatever snapshot was last published.
func main() {
	next := flag.Bool("next", false, "advance to the next quote in the rotation")
	fav := flag.Bool("fav", false, "toggle favorite on the displayed quote")
	flag.Parse()

	if err := logging.Init(); err != nil {
		log.Printf("Warning: file logging unavailable: %v", err)
	}
	defer logging.Close()

	st, err := store.Open(config.DBPath())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	reader := widget.NewReader(st)
	snap, ok, err := reader.Load()
	if err != nil {
		log.Fatalf("Failed to read widget snapshot: %v", err)
	}
	if !ok || len(snap.Quotes) == 0 {
		fmt.Println(metaStyle.Render("No quotes yet - open quotedeck to build a queue."))
		return
	}

	if *next {
		reader.Rotate()
	}

	q, ok := reader.Current(snap)
	if !ok {
		fmt.Println(metaStyle.Render("Queue is empty."))
		return
	}

	favorites := make(map[string]bool, len(snap.FavoriteIDs))
	for _, id := range snap.FavoriteIDs {
		favorites[id] = true
	}

	if *fav {
		if favorites[q.ID] {
			if err := st.RemoveMember(store.SetFavorites, q.ID); err != nil {
				log.Fatalf("Failed to unfavorite: %v", err)
			}
			delete(favorites, q.ID)
		} else {
			if err := st.AddMember(store.SetFavorites, q.ID); err != nil {
				log.Fatalf("Failed to favorite: %v", err)
			}
			favorites[q.ID] = true
		}
		logging.Info("widget toggled favorite", "quote", q.ID, "favorite", favorites[q.ID])
	}

	render(os.Stdout, snap, q, favorites[q.ID])
}

func render(w *os.File, snap widget.Snapshot, q widget.SnapshotQuote, favorite bool) {
	body := textStyle.Render("“"+q.Text+"”") + "\n\n" +
		metaStyle.Render(fmt.Sprintf("— %s, %s", q.Author, q.Work))

	footer := metaStyle.Render(fmt.Sprintf("%s · %d/%d", snap.QueueName, q.Position, q.Total))
	if favorite {
		footer += "  " + favStyle.Render("★")
	}
	body += "\n" + footer

	fmt.Fprintln(w, cardStyle.Render(body))
}
