// Package loader reads a quote library from disk.
//
// Library layout: one subdirectory per author, each work a Title_Year.txt
// file, one quote per non-blank line. A filename containing "satire" flags
// the work as satire. A first line starting with http is taken as the work's
// source URL, not a quote. An image file in the author directory becomes the
// author's profile image.
package loader

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"quotedeck/internal/library"
	"quotedeck/internal/logging"
)

// maxConcurrentAuthors bounds parallel author directory parses.
const maxConcurrentAuthors = 8

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// Load parses the library rooted at dir into a catalog.
//
// Unreadable files and malformed names are skipped with a log line, never
// fatal; the only errors returned are a missing root and context
// cancellation. Global ordinals are assigned in sorted author/work order so
// a load pass over unchanged files is fully deterministic.
func Load(ctx context.Context, root string) (*library.Catalog, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read library root: %w", err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)

	authors := make([]*library.Author, len(dirs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentAuthors)
	for i, name := range dirs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a := loadAuthor(filepath.Join(root, name), name)
			mu.Lock()
			authors[i] = a
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Drop authors with no loadable works, then assign load-pass ordinals.
	kept := authors[:0]
	ordinal := 0
	for _, a := range authors {
		if a == nil || len(a.Works) == 0 {
			continue
		}
		for wi := range a.Works {
			for qi := range a.Works[wi].Quotes {
				a.Works[wi].Quotes[qi].Ordinal = ordinal
				ordinal++
			}
		}
		kept = append(kept, a)
	}

	return library.NewCatalog(kept), nil
}

// loadAuthor parses a single author directory.
func loadAuthor(dir, name string) *library.Author {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.Warn("skipping unreadable author directory", "dir", dir, "error", err)
		return nil
	}

	a := &library.Author{
		ID:   library.AuthorID(name),
		Name: name,
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if imageExts[ext] {
			if a.ImagePath == "" {
				a.ImagePath = filepath.Join(dir, e.Name())
			}
			continue
		}
		if ext == ".txt" {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, f := range files {
		w, err := loadWork(filepath.Join(dir, f), a, f)
		if err != nil {
			logging.Warn("skipping unreadable work", "file", f, "author", name, "error", err)
			continue
		}
		if len(w.Quotes) > 0 {
			a.Works = append(a.Works, w)
		}
	}
	return a
}

// loadWork parses one Title_Year.txt work file.
func loadWork(path string, author *library.Author, filename string) (library.Work, error) {
	title, year := parseWorkName(filename)
	w := library.Work{
		Title:  title,
		Year:   year,
		Satire: strings.Contains(strings.ToLower(filename), "satire"),
	}

	f, err := os.Open(path)
	if err != nil {
		return w, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	seq := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if first && strings.HasPrefix(line, "http") {
			w.SourceURL = line
			first = false
			continue
		}
		first = false
		w.Quotes = append(w.Quotes, library.Quote{
			ID:       library.QuoteID(author.Name, w.Title, seq),
			Text:     line,
			Author:   author.Name,
			AuthorID: author.ID,
			Work:     w.Title,
			Year:     w.Year,
			Satire:   w.Satire,
			Seq:      seq,
		})
		seq++
	}
	if err := sc.Err(); err != nil {
		return library.Work{}, err
	}
	return w, nil
}

// parseWorkName splits "Some_Title_1984.txt" into ("Some Title", 1984).
// Files without a trailing year still load, with year 0.
func parseWorkName(filename string) (string, int) {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	year := 0
	if i := strings.LastIndex(base, "_"); i > 0 {
		if y, err := strconv.Atoi(base[i+1:]); err == nil {
			year = y
			base = base[:i]
		}
	}
	return strings.ReplaceAll(base, "_", " "), year
}
