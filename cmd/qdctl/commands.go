package main

import (
	"errors"
	"fmt"

	"quotedeck/internal/config"
	"quotedeck/internal/store"
	"quotedeck/internal/widget"
)

func openStore() (*store.Store, error) {
	return store.Open(config.DBPath())
}

// targetQuote resolves the quote an action applies to: the explicit ID
// argument, or the quote the widget is currently showing.
func targetQuote(st *store.Store, args []string) (store.QuoteRow, error) {
	if len(args) > 0 {
		q, ok, err := st.QuoteByID(args[0])
		if err != nil {
			return store.QuoteRow{}, err
		}
		if !ok {
			return store.QuoteRow{}, fmt.Errorf("no quote with ID %s", args[0])
		}
		return q, nil
	}

	reader := widget.NewReader(st)
	snap, ok, err := reader.Load()
	if err != nil {
		return store.QuoteRow{}, err
	}
	if !ok {
		return store.QuoteRow{}, errors.New("no widget snapshot; open quotedeck first or pass a quote ID")
	}
	sq, ok := reader.Current(snap)
	if !ok {
		return store.QuoteRow{}, errors.New("widget snapshot is empty")
	}
	q, ok, err := st.QuoteByID(sq.ID)
	if err != nil {
		return store.QuoteRow{}, err
	}
	if !ok {
		return store.QuoteRow{}, fmt.Errorf("widget quote %s is no longer in the library", sq.ID)
	}
	return q, nil
}

// runOpen records a one-shot open request the reader consumes at startup.
func runOpen(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: qdctl open <quote-id>")
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	_, ok, err := st.QuoteByID(args[0])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no quote with ID %s", args[0])
	}
	if err := st.SetSetting(store.SettingPendingOpen, args[0]); err != nil {
		return err
	}
	fmt.Printf("quote %s will open on next launch\n", args[0])
	return nil
}

func runCopy(args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	q, err := targetQuote(st, args)
	if err != nil {
		return err
	}
	if q.Year > 0 {
		fmt.Printf("“%s” — %s, %s (%d)\n", q.Text, q.Author, q.Work, q.Year)
	} else {
		fmt.Printf("“%s” — %s, %s\n", q.Text, q.Author, q.Work)
	}
	return nil
}

func runFav(args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	q, err := targetQuote(st, args)
	if err != nil {
		return err
	}
	favorites, err := st.Members(store.SetFavorites)
	if err != nil {
		return err
	}
	if favorites[q.ID] {
		if err := st.RemoveMember(store.SetFavorites, q.ID); err != nil {
			return err
		}
		fmt.Printf("unfavorited %s\n", q.ID)
	} else {
		if err := st.AddMember(store.SetFavorites, q.ID); err != nil {
			return err
		}
		fmt.Printf("favorited %s\n", q.ID)
	}
	return nil
}

func runAdvance() error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	reader := widget.NewReader(st)
	n := reader.Rotate()
	fmt.Printf("widget rotation advanced to %d\n", n)
	return nil
}

func runStats() error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	count, err := st.QuoteCount()
	if err != nil {
		return err
	}
	fmt.Printf("quotes:        %d\n", count)

	for _, set := range []struct{ label, name string }{
		{"favorites", store.SetFavorites},
		{"starred", store.SetStarred},
		{"excluded works", store.SetExcludedWorks},
		{"not based", store.SetNotBased},
		{"hidden", store.SetHidden},
		{"viewed", store.SetViewed},
	} {
		members, err := st.Members(set.name)
		if err != nil {
			return err
		}
		fmt.Printf("%-14s %d\n", set.label+":", len(members))
	}

	queues, err := st.SavedQueues()
	if err != nil {
		return err
	}
	fmt.Printf("saved queues:  %d\n", len(queues))

	version, _, updatedAt, ok, err := st.WidgetSnapshot()
	if err != nil {
		return err
	}
	if ok {
		fmt.Printf("widget:        snapshot v%d, updated %s\n", version, updatedAt.Format("2006-01-02 15:04:05"))
	} else {
		fmt.Println("widget:        no snapshot published")
	}
	return nil
}

func runQueues() error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	queues, err := st.SavedQueues()
	if err != nil {
		return err
	}
	if len(queues) == 0 {
		fmt.Println("no saved queues")
		return nil
	}
	for _, q := range queues {
		fmt.Printf("%s  %-24s %3d quotes  %s\n",
			q.ID, q.Name, len(q.QuoteIDs), q.CreatedAt.Format("2006-01-02"))
	}
	return nil
}
