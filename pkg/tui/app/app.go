// Package teaui hosts the Bubble Tea program for the taskdeck TUI.
package teaui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/taskdeck/pkg/app"
	"tableflip.dev/taskdeck/pkg/record"
	"tableflip.dev/taskdeck/pkg/tui/help"
	"tableflip.dev/taskdeck/pkg/tui/theme"
)

// DefaultFrameInterval paces the render loop at 30 frames per second.
const DefaultFrameInterval = time.Second / 30

// Board is what the UI needs from the service layer.
type Board interface {
	Snapshot(ctx context.Context) app.Snapshot
	Add(ctx context.Context, c record.Collection, text string) error
	Edit(ctx context.Context, c record.Collection, r record.Record, text string) error
	Toggle(ctx context.Context, c record.Collection, r record.Record) error
	Remove(ctx context.Context, c record.Collection, id int64) error
}

var _ Board = (*app.Service)(nil)

// Options tune the render loop.
type Options struct {
	// FrameInterval is the time between frames. Zero means DefaultFrameInterval.
	FrameInterval time.Duration
	// RefreshInterval is the minimum time between refreshes. Zero refreshes on
	// every frame; at most one refresh is ever in flight.
	RefreshInterval time.Duration
	// HelpStyle is the glamour style of the help page.
	HelpStyle string
	// Context bounds every request issued by the UI.
	Context context.Context
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

// Model states
type mode int

const (
	modeNormal mode = iota
	modeDialog
	modeHelp
)

type frameMsg time.Time
type snapshotMsg struct{ snap app.Snapshot }
type mutationMsg struct {
	verb       string
	collection record.Collection
	err        error
}
type errMsg struct{ err error }

// ConfigChangedMsg carries new loop timings after the config file changed.
type ConfigChangedMsg struct {
	FrameInterval   time.Duration
	RefreshInterval time.Duration
}

// Model contains UI state
type Model struct {
	board  Board
	ctx    context.Context
	cancel context.CancelFunc
	opts   Options

	mode  mode
	state ViewState

	active int
	cursor map[record.Collection]int

	snap        app.Snapshot
	inFlight    bool
	dirty       bool
	lastRefresh time.Time

	dialog dialog
	help   *help.Model

	status    string
	statusErr bool
	// refreshErr marks the status as owned by a failed refresh, so the next
	// good refresh clears it.
	refreshErr bool

	termWidth  int
	termHeight int

	theme theme.Theme
}

// New creates a new UI model backed by board.
func New(board Board, opts Options) *Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	th := theme.Default()

	empty := make(map[record.Collection][]record.Record, len(record.All))
	for _, c := range record.All {
		empty[c] = []record.Record{}
	}

	return &Model{
		board:  board,
		ctx:    ctx,
		cancel: cancel,
		opts:   opts,
		mode:   modeNormal,
		cursor: make(map[record.Collection]int, len(record.All)),
		snap:   app.Snapshot{Lists: empty},
		dialog: newDialog(th.Dialog),
		theme:  th,
	}
}

// Init starts the frame loop and the first refresh.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.nextFrame(), m.refresh())
}

// State returns a copy of the dialog presentation state.
func (m *Model) State() ViewState {
	return m.state
}

// Snapshot returns the data currently on screen.
func (m *Model) Snapshot() app.Snapshot {
	return m.snap
}

// Active returns the collection whose tab is selected.
func (m *Model) Active() record.Collection {
	return record.All[m.active]
}

// Status returns the status line text.
func (m *Model) Status() string {
	return m.status
}

func (m *Model) nextFrame() tea.Cmd {
	return tea.Tick(m.opts.FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// refresh fetches every collection off the update loop. It returns nil when
// there is no board to ask.
func (m *Model) refresh() tea.Cmd {
	if m.board == nil {
		return nil
	}
	m.inFlight = true
	m.dirty = false
	m.lastRefresh = m.opts.Now()
	board, ctx := m.board, m.ctx
	return func() tea.Msg {
		return snapshotMsg{snap: board.Snapshot(ctx)}
	}
}

// requestRefresh refreshes now, or as soon as the running refresh lands.
func (m *Model) requestRefresh(cmds *[]tea.Cmd) {
	if m.inFlight {
		m.dirty = true
		return
	}
	if cmd := m.refresh(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) refreshDue(now time.Time) bool {
	if m.inFlight || m.board == nil {
		return false
	}
	return m.dirty || now.Sub(m.lastRefresh) >= m.opts.RefreshInterval
}

func (m *Model) mutate(verb string, c record.Collection, fn func(ctx context.Context) error) tea.Cmd {
	if m.board == nil {
		return func() tea.Msg { return errMsg{app.ErrNoStore} }
	}
	ctx := m.ctx
	return func() tea.Msg {
		return mutationMsg{verb: verb, collection: c, err: fn(ctx)}
	}
}

// Update is the single writer of the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		if m.help != nil {
			m.help.SetSize(m.helpSize())
		}
	case frameMsg:
		now := time.Time(msg)
		m.state.Tick(now)
		if m.refreshDue(now) {
			cmds = append(cmds, m.refresh())
		}
		cmds = append(cmds, m.nextFrame())
	case snapshotMsg:
		m.applySnapshot(msg.snap, &cmds)
	case mutationMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("%s %s: %w", msg.verb, strings.ToLower(msg.collection.Kind()), msg.err))
		} else {
			m.setStatus(fmt.Sprintf("%s %s", titleVerb(msg.verb), strings.ToLower(msg.collection.Kind())))
		}
		m.requestRefresh(&cmds)
	case errMsg:
		m.setError(msg.err)
	case ConfigChangedMsg:
		if msg.FrameInterval > 0 {
			m.opts.FrameInterval = msg.FrameInterval
		}
		if msg.RefreshInterval >= 0 {
			m.opts.RefreshInterval = msg.RefreshInterval
		}
		m.setStatus("Config reloaded")
	case tea.KeyPressMsg:
		m.handleKeyPress(msg, &cmds)
	default:
		switch m.mode {
		case modeDialog:
			cmds = append(cmds, m.dialog.update(msg))
		case modeHelp:
			cmds = append(cmds, m.help.Update(msg))
		}
	}

	return m, tea.Batch(cmds...)
}

// applySnapshot swaps in snap whole. Results older than the one on screen are
// dropped.
func (m *Model) applySnapshot(snap app.Snapshot, cmds *[]tea.Cmd) {
	m.inFlight = false
	if m.snap.Generation != 0 && !snap.NewerThan(m.snap) {
		return
	}
	m.snap = snap
	for _, c := range record.All {
		m.clampCursor(c)
	}

	if failed := snap.Failed(); len(failed) > 0 {
		names := make([]string, 0, len(failed))
		for _, c := range failed {
			names = append(names, string(c))
		}
		m.setError(fmt.Errorf("could not load %s", strings.Join(names, ", ")))
		m.refreshErr = true
	} else if m.refreshErr {
		m.setStatus("")
	}

	if m.dirty {
		m.requestRefresh(cmds)
	}
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch m.mode {
	case modeDialog:
		m.handleDialogKey(msg, cmds)
	case modeHelp:
		m.handleHelpKey(msg, cmds)
	default:
		m.handleNormalKey(msg, cmds)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quit(cmds)
	case "tab", "l", "right":
		m.active = (m.active + 1) % len(record.All)
	case "shift+tab", "h", "left":
		m.active = (m.active + len(record.All) - 1) % len(record.All)
	case "1", "2", "3":
		m.active = int(msg.String()[0] - '1')
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.cursor[m.Active()] = 0
	case "G", "end":
		m.cursor[m.Active()] = len(m.snap.List(m.Active())) - 1
		m.clampCursor(m.Active())
	case "a":
		m.beginAdd(cmds)
	case "e":
		m.beginEdit(cmds)
	case "x", "delete":
		m.removeSelected(cmds)
	case "space", " ":
		m.toggleSelected(cmds)
	case "r":
		m.setStatus("Refreshing…")
		m.requestRefresh(cmds)
	case "?":
		m.showHelp()
	}
}

func (m *Model) handleDialogKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quit(cmds)
	case "enter":
		m.submitDialog(cmds)
	case "esc":
		c := m.dialog.collection
		editing := m.dialog.editing != nil
		m.dialog.cancel()
		m.state.Close(c)
		m.setMode(modeNormal)
		if editing {
			m.setStatus("Edit cancelled")
		} else {
			m.setStatus("Add cancelled")
		}
	default:
		*cmds = append(*cmds, m.dialog.update(msg))
	}
}

func (m *Model) handleHelpKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quit(cmds)
	case "q", "esc", "?":
		m.setMode(modeNormal)
	default:
		*cmds = append(*cmds, m.help.Update(msg))
	}
}

func (m *Model) quit(cmds *[]tea.Cmd) {
	m.cancel()
	*cmds = append(*cmds, tea.Quit)
}

func (m *Model) setMode(newMode mode) {
	m.mode = newMode
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
	m.refreshErr = false
}

func (m *Model) setError(err error) {
	m.status = "ERR: " + err.Error()
	m.statusErr = true
	m.refreshErr = false
}

func (m *Model) moveCursor(delta int) {
	c := m.Active()
	m.cursor[c] += delta
	m.clampCursor(c)
}

func (m *Model) clampCursor(c record.Collection) {
	n := len(m.snap.List(c))
	switch {
	case n == 0 || m.cursor[c] < 0:
		m.cursor[c] = 0
	case m.cursor[c] >= n:
		m.cursor[c] = n - 1
	}
}

// selected returns the record under the cursor of the active tab.
func (m *Model) selected() (record.Record, bool) {
	c := m.Active()
	list := m.snap.List(c)
	i := m.cursor[c]
	if i < 0 || i >= len(list) {
		return record.Record{}, false
	}
	return list[i], true
}

func (m *Model) beginAdd(cmds *[]tea.Cmd) {
	c := m.Active()
	m.dialog.openAdd(c)
	m.state.Open(c, m.opts.Now())
	m.setMode(modeDialog)
	*cmds = append(*cmds, textinput.Blink)
}

func (m *Model) beginEdit(cmds *[]tea.Cmd) {
	r, ok := m.selected()
	if !ok {
		m.setStatus("Nothing to edit")
		return
	}
	m.dialog.openEdit(m.Active(), r)
	m.state.Restart(m.opts.Now())
	m.setMode(modeDialog)
	*cmds = append(*cmds, textinput.Blink)
}

func (m *Model) submitDialog(cmds *[]tea.Cmd) {
	c := m.dialog.collection
	editing := m.dialog.editing
	text := m.dialog.submit()
	m.state.Close(c)
	m.setMode(modeNormal)

	board := m.board
	if editing != nil {
		r := *editing
		*cmds = append(*cmds, m.mutate("edit", c, func(ctx context.Context) error {
			return board.Edit(ctx, c, r, text)
		}))
		return
	}
	*cmds = append(*cmds, m.mutate("add", c, func(ctx context.Context) error {
		return board.Add(ctx, c, text)
	}))
}

// removeSelected deletes the selected record on the server. The row stays on
// screen until a refresh no longer returns it.
func (m *Model) removeSelected(cmds *[]tea.Cmd) {
	r, ok := m.selected()
	if !ok {
		m.setStatus("Nothing to remove")
		return
	}
	c, board := m.Active(), m.board
	*cmds = append(*cmds, m.mutate("remove", c, func(ctx context.Context) error {
		return board.Remove(ctx, c, r.ID)
	}))
}

func (m *Model) toggleSelected(cmds *[]tea.Cmd) {
	c := m.Active()
	if !c.HasCompletion() {
		m.setStatus(c.Title() + " have no completion")
		return
	}
	r, ok := m.selected()
	if !ok {
		m.setStatus("Nothing to toggle")
		return
	}
	verb := "complete"
	if r.Done() {
		verb = "reopen"
	}
	board := m.board
	*cmds = append(*cmds, m.mutate(verb, c, func(ctx context.Context) error {
		return board.Toggle(ctx, c, r)
	}))
}

func (m *Model) showHelp() {
	if m.help == nil {
		w, h := m.helpSize()
		m.help = help.New(m.opts.HelpStyle, w, h)
	}
	m.setMode(modeHelp)
}

func titleVerb(verb string) string {
	switch verb {
	case "add":
		return "Added"
	case "edit":
		return "Updated"
	case "remove":
		return "Removed"
	case "complete":
		return "Completed"
	case "reopen":
		return "Reopened"
	}
	return verb
}

// NewProgram wraps a new model in an alt-screen program.
func NewProgram(board Board, opts Options, programOpts ...tea.ProgramOption) *tea.Program {
	programOpts = append([]tea.ProgramOption{tea.WithAltScreen()}, programOpts...)
	return tea.NewProgram(New(board, opts), programOpts...)
}
