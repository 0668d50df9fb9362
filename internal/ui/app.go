package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"quotedeck/internal/coord"
	"quotedeck/internal/library"
)

// mode selects which surface the app is showing.
type mode int

const (
	modeReader mode = iota
	modeRoster
	modeQueues
	modeHelp
)

const fps = 60

// Config wires the app to the engine. Every mutation the UI can trigger is
// a closure here, so the model itself stays free of storage and catalog
// concerns.
type Config struct {
	BuildMain      func() tea.Cmd
	BuildAll       func() tea.Cmd
	BuildFavorites func() tea.Cmd
	BuildStarred   func() tea.Cmd
	Shuffle        func() tea.Cmd

	ToggleFavorite func(quoteID string) tea.Cmd
	ToggleStarred  func(authorID string) tea.Cmd
	ToggleHidden   func(quoteID string) tea.Cmd
	ToggleNotBased func(quoteID string) tea.Cmd
	ExcludeWork    func(authorID, work string) tea.Cmd
	ToggleSatire   func() tea.Cmd
	ToggleBookKind func(authorID string) tea.Cmd
	Advance        func(quoteID string) tea.Cmd

	SaveQueue    func(name string) tea.Cmd
	RestoreQueue func(queueID string) tea.Cmd
	DeleteQueue  func(queueID string) tea.Cmd
	LoadQueues   func() tea.Cmd

	LoadRoster   func() tea.Cmd
	RosterToggle func(authorID string) tea.Cmd
	RosterMove   func(from, to int) tea.Cmd

	ApplyLoad func(msg coord.LoadComplete) tea.Cmd

	IsFavorite   func(quoteID string) bool
	IsBookAuthor func(authorID string) bool
	ShowSatire   func() bool
}

// App is the root Bubble Tea model.
type App struct {
	cfg  Config
	keys keyMap
	help help.Model

	width  int
	height int
	mode   mode

	quotes    []library.Quote
	index     int
	queueName string

	// lastGen tracks the newest load generation applied, so a stale
	// LoadComplete that slips past the coordinator is still ignored here.
	lastGen uint64
	loading bool
	spinner spinner.Model
	loadErr error

	spring   harmonica.Spring
	offset   float64
	velocity float64
	sliding  bool

	roster rosterView
	queues queuesView

	flash string
}

// NewApp builds the root model. The engine's closures arrive via cfg.
func NewApp(cfg Config) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &App{
		cfg:     cfg,
		keys:    defaultKeyMap(),
		help:    help.New(),
		loading: true,
		spinner: sp,
		spring:  harmonica.NewSpring(harmonica.FPS(fps), 8.0, 0.7),
		queues:  newQueuesView(),
	}
}

func (a *App) Init() tea.Cmd {
	return a.spinner.Tick
}

func frame() tea.Cmd {
	return tea.Tick(time.Second/fps, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case coord.LoadComplete:
		if msg.Generation < a.lastGen {
			return a, nil
		}
		a.lastGen = msg.Generation
		a.loading = false
		a.loadErr = msg.Err
		if msg.Err != nil {
			return a, nil
		}
		if a.cfg.ApplyLoad != nil {
			return a, a.cfg.ApplyLoad(msg)
		}
		return a, nil

	case QueueLoaded:
		if msg.Err != nil {
			a.flash = errorStyle.Render(msg.Err.Error())
			return a, nil
		}
		a.quotes = msg.Quotes
		a.queueName = msg.Name
		a.index = 0
		if msg.Cursor != "" {
			for i, q := range a.quotes {
				if q.ID == msg.Cursor {
					a.index = i
					break
				}
			}
		}
		a.mode = modeReader
		a.offset = 0
		a.sliding = false
		return a, nil

	case RosterLoaded:
		a.roster.setEntries(msg.Entries)
		return a, nil

	case QueuesLoaded:
		a.queues.setQueues(msg.Queues)
		return a, nil

	case QueueSaved:
		if msg.Err != nil {
			a.flash = errorStyle.Render("save failed: " + msg.Err.Error())
			return a, nil
		}
		a.flash = fmt.Sprintf("saved %q", msg.Queue.Name)
		if a.cfg.LoadQueues != nil {
			return a, a.cfg.LoadQueues()
		}
		return a, nil

	case Status:
		a.flash = msg.Text
		return a, nil

	case frameMsg:
		if !a.sliding {
			return a, nil
		}
		a.offset, a.velocity = a.spring.Update(a.offset, a.velocity, 0)
		if a.offset < 1 && a.offset > -1 && a.velocity < 1 && a.velocity > -1 {
			a.offset = 0
			a.velocity = 0
			a.sliding = false
			return a, nil
		}
		return a, frame()

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	// The naming prompt owns the rest of the keyboard while open.
	if key.Matches(msg, a.keys.Quit) && !(a.mode == modeQueues && a.queues.naming) {
		return a, tea.Quit
	}

	switch a.mode {
	case modeRoster:
		if msg.String() == "esc" {
			a.mode = modeReader
			return a, a.cfg.BuildMain()
		}
		return a, a.roster.update(msg, a.cfg)

	case modeQueues:
		if msg.String() == "esc" && !a.queues.naming {
			a.mode = modeReader
			return a, nil
		}
		return a, a.queues.update(msg, a.cfg)

	case modeHelp:
		if msg.String() == "esc" || key.Matches(msg, a.keys.Help) {
			a.mode = modeReader
		}
		return a, nil
	}

	a.flash = ""

	switch {
	case key.Matches(msg, a.keys.Next):
		return a, a.advance(1)
	case key.Matches(msg, a.keys.Prev):
		return a, a.advance(-1)

	case key.Matches(msg, a.keys.Favorite):
		if q, ok := a.current(); ok {
			return a, a.cfg.ToggleFavorite(q.ID)
		}
	case key.Matches(msg, a.keys.Star):
		if q, ok := a.current(); ok {
			return a, a.cfg.ToggleStarred(q.AuthorID)
		}
	case key.Matches(msg, a.keys.Hide):
		if q, ok := a.current(); ok {
			a.removeCurrent()
			return a, a.cfg.ToggleHidden(q.ID)
		}
	case key.Matches(msg, a.keys.NotBased):
		if q, ok := a.current(); ok {
			a.removeCurrent()
			return a, a.cfg.ToggleNotBased(q.ID)
		}
	case key.Matches(msg, a.keys.Exclude):
		if q, ok := a.current(); ok {
			return a, a.cfg.ExcludeWork(q.AuthorID, q.Work)
		}
	case key.Matches(msg, a.keys.Satire):
		return a, a.cfg.ToggleSatire()
	case key.Matches(msg, a.keys.BookKind):
		if q, ok := a.current(); ok {
			return a, a.cfg.ToggleBookKind(q.AuthorID)
		}

	case key.Matches(msg, a.keys.Shuffle):
		return a, a.cfg.Shuffle()
	case key.Matches(msg, a.keys.AllQueue):
		return a, a.cfg.BuildAll()
	case key.Matches(msg, a.keys.FavQueue):
		return a, a.cfg.BuildFavorites()
	case key.Matches(msg, a.keys.StarQueue):
		return a, a.cfg.BuildStarred()

	case key.Matches(msg, a.keys.Roster):
		a.mode = modeRoster
		return a, a.cfg.LoadRoster()
	case key.Matches(msg, a.keys.Queues):
		a.mode = modeQueues
		return a, a.cfg.LoadQueues()
	case key.Matches(msg, a.keys.SaveQueue):
		a.mode = modeQueues
		return a, tea.Batch(a.cfg.LoadQueues(), a.queues.beginNaming())
	case key.Matches(msg, a.keys.Help):
		a.mode = modeHelp
	}
	return a, nil
}

// advance moves the reader cursor by delta, clamped at the queue edges,
// and kicks the slide animation.
func (a *App) advance(delta int) tea.Cmd {
	next := a.index + delta
	if next < 0 || next >= len(a.quotes) {
		return nil
	}
	a.index = next
	a.offset = float64(delta) * float64(a.width) / 2
	a.velocity = 0
	a.sliding = true

	cmds := []tea.Cmd{frame()}
	if a.cfg.Advance != nil {
		cmds = append(cmds, a.cfg.Advance(a.quotes[next].ID))
	}
	return tea.Batch(cmds...)
}

// removeCurrent drops the current quote locally so the next card shows
// immediately; the engine mirrors the removal on its side.
func (a *App) removeCurrent() {
	if a.index >= len(a.quotes) {
		return
	}
	a.quotes = append(a.quotes[:a.index], a.quotes[a.index+1:]...)
	if a.index >= len(a.quotes) && a.index > 0 {
		a.index = len(a.quotes) - 1
	}
}

func (a *App) current() (library.Quote, bool) {
	if len(a.quotes) == 0 || a.index >= len(a.quotes) {
		return library.Quote{}, false
	}
	return a.quotes[a.index], true
}

func (a *App) View() string {
	if a.width == 0 {
		return ""
	}

	switch a.mode {
	case modeRoster:
		return a.roster.view(a.width, a.height)
	case modeQueues:
		return a.queues.view(a.width, a.height)
	case modeHelp:
		return titleStyle.Render("Key Bindings") + "\n\n" + a.help.FullHelpView(a.keys.FullHelp())
	}

	if a.loading {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
			a.spinner.View()+" loading library…")
	}
	if a.loadErr != nil {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
			errorStyle.Render("library load failed: "+a.loadErr.Error()))
	}

	body := a.height - 1
	var card string
	if q, ok := a.current(); ok {
		fav := a.cfg.IsFavorite != nil && a.cfg.IsFavorite(q.ID)
		book := a.cfg.IsBookAuthor != nil && a.cfg.IsBookAuthor(q.AuthorID)
		card = renderQuote(q, fav, book, int(a.offset), a.width, body)
	} else {
		card = lipgloss.Place(a.width, body, lipgloss.Center, lipgloss.Center,
			rowStyle.Render("queue is empty"))
	}

	satire := a.cfg.ShowSatire == nil || a.cfg.ShowSatire()
	pos := 0
	if len(a.quotes) > 0 {
		pos = a.index + 1
	}
	bar := renderStatusBar(a.queueName, pos, len(a.quotes), a.width, satire, a.flash)
	return card + "\n" + bar
}
