// Package tui is the interactive wishlist client: numbered menus over the
// record store, with sort, filter, search and totals delegated to workers.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/msto63/wishbrick/internal/sorting"
	"github.com/msto63/wishbrick/internal/wishlist"
	"github.com/msto63/wishbrick/internal/wishlist/store"
	"github.com/msto63/wishbrick/pkg/core/logging"
)

// Dispatcher sends queries to the workers.
type Dispatcher interface {
	Sort(ctx context.Context, coll wishlist.Collection, dir sorting.Direction) (wishlist.Collection, error)
	FilterByAge(ctx context.Context, coll wishlist.Collection, minAge int) (wishlist.Collection, error)
	FilterByPieces(ctx context.Context, coll wishlist.Collection, minPieces int) (wishlist.Collection, error)
	CountSets(ctx context.Context, coll wishlist.Collection) (int, error)
	TotalCost(ctx context.Context, coll wishlist.Collection) (decimal.Decimal, error)
	TotalPieces(ctx context.Context, coll wishlist.Collection) (int, error)
	SearchByNumber(ctx context.Context, number string) (string, error)
	SearchByName(ctx context.Context, name string) (string, error)
}

// Options tune the client's timing.
type Options struct {
	// Pause follows messages such as invalid input or a saved set.
	Pause time.Duration
	// EmptyPause follows the empty wish list notice.
	EmptyPause time.Duration
}

// DefaultOptions returns the standard one and two second pauses.
func DefaultOptions() Options {
	return Options{Pause: time.Second, EmptyPause: 2 * time.Second}
}

type screen int

const (
	screenHome screen = iota
	screenMenu
	screenList
	screenViewPick
	screenDetail
	screenAdd
	screenQuickAdd
	screenEditPick
	screenEditConfirm
	screenEditFields
	screenDeletePick
	screenDeleteConfirm
	screenSort
	screenFilter
	screenFilterValue
	screenSearch
	screenSearchValue
	screenTotals
	screenResult
)

// pauseDoneMsg ends a pause and moves to next. Stale pauses are ignored.
type pauseDoneMsg struct {
	seq  int
	next screen
}

// replyMsg carries a finished worker call.
type replyMsg struct {
	result result
	err    error
}

// result is what the result screen shows.
type result struct {
	title string
	sets  wishlist.Collection
	text  string
	back  screen
}

// Model is the wishlist client state machine
type Model struct {
	ctx        context.Context
	store      store.Store
	dispatcher Dispatcher
	opts       Options
	logger     *logging.Logger

	screen   screen
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	ready    bool
	width    int
	height   int

	// busy is set while a worker call or a pause is running; keys are
	// ignored until it clears.
	busy     bool
	waiting  bool
	pauseSeq int
	flash    string
	flashErr bool

	// sets and record are loaded when a list or detail screen is
	// entered; View never reads the store.
	sets   wishlist.Collection
	record wishlist.Record

	key      string
	returnTo screen
	answers  []string
	choice   string
	result   result
	quitting bool
}

// New creates the client model over st, sending queries through d.
func New(ctx context.Context, st store.Store, d Dispatcher, opts Options) Model {
	if opts.Pause <= 0 {
		opts.Pause = DefaultOptions().Pause
	}
	if opts.EmptyPause <= 0 {
		opts.EmptyPause = DefaultOptions().EmptyPause
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 512
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return Model{
		ctx:        ctx,
		store:      st,
		dispatcher: d,
		opts:       opts,
		logger:     logging.New("tui"),
		screen:     screenHome,
		input:      ti,
		spinner:    sp,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Quitting reports whether the user left the app.
func (m Model) Quitting() bool {
	return m.quitting
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if m.busy || m.quitting {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyEnter:
			value := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			m.flash = ""
			return m.submit(value)
		case tea.KeyEsc:
			if m.screen != screenHome && m.screen != screenMenu {
				m.input.Reset()
				return m.enter(screenMenu)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		bodyHeight := msg.Height - 8
		if bodyHeight < 3 {
			bodyHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, bodyHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = bodyHeight
		}
		m.input.Width = msg.Width - 4
		return m, nil

	case pauseDoneMsg:
		if msg.seq != m.pauseSeq {
			return m, nil
		}
		m.busy = false
		m.flash = ""
		return m.enter(msg.next)

	case replyMsg:
		m.busy = false
		m.waiting = false
		if msg.err != nil {
			m.logger.LogError(msg.err)
			return m.pause("❌  "+msg.err.Error(), true, m.opts.Pause, msg.result.back)
		}
		m.result = msg.result
		m.screen = screenResult
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// enter switches to s and loads what it shows. List screens fall back to
// the menu with a notice when the wish list is empty.
func (m Model) enter(s screen) (Model, tea.Cmd) {
	switch s {
	case screenList, screenViewPick, screenEditPick, screenDeletePick:
		coll, err := m.snapshot()
		if err != nil {
			return m.storeFailed(err)
		}
		m.sets = coll
		if len(coll) == 0 {
			m.screen = screenMenu
			return m.pause(msgEmpty, false, m.opts.EmptyPause, screenMenu)
		}
	case screenDetail:
		rec, err := m.store.Get(m.ctx, m.key)
		if err != nil {
			return m.storeFailed(err)
		}
		m.record = rec
	case screenAdd, screenEditFields:
		m.answers = nil
	}
	m.screen = s
	return m, nil
}

// pause shows text, ignores input for d and then enters next.
func (m Model) pause(text string, isErr bool, d time.Duration, next screen) (Model, tea.Cmd) {
	m.flash = text
	m.flashErr = isErr
	m.busy = true
	m.pauseSeq++
	seq := m.pauseSeq
	return m, tea.Tick(d, func(time.Time) tea.Msg {
		return pauseDoneMsg{seq: seq, next: next}
	})
}

func (m Model) invalidChoice() (Model, tea.Cmd) {
	return m.pause(msgInvalidChoice, true, m.opts.Pause, m.screen)
}

func (m Model) storeFailed(err error) (Model, tea.Cmd) {
	m.logger.LogError(err)
	return m.pause("❌  "+err.Error(), true, m.opts.Pause, screenMenu)
}

// request runs call as a command; its reply arrives as replyMsg.
func (m Model) request(back screen, call func(ctx context.Context) (result, error)) (Model, tea.Cmd) {
	m.busy = true
	m.waiting = true
	ctx := m.ctx
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		res, err := call(ctx)
		res.back = back
		return replyMsg{result: res, err: err}
	})
}

// snapshot copies the wish list for a worker request.
func (m Model) snapshot() (wishlist.Collection, error) {
	return m.store.Snapshot(m.ctx)
}
