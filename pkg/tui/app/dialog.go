package teaui

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/taskdeck/pkg/anim"
	"tableflip.dev/taskdeck/pkg/record"
	"tableflip.dev/taskdeck/pkg/tui/theme"
)

// MaxInput is the longest text a dialog accepts.
const MaxInput = 128

// dialog is the text entry shown for add and edit. Only one is on screen at a
// time; drafts of cancelled add dialogs are kept per collection.
type dialog struct {
	input textinput.Model

	collection record.Collection
	// editing is set when the dialog replaces the text of an existing record.
	editing *record.Record

	drafts map[record.Collection]string
	theme  theme.DialogTheme
}

func newDialog(th theme.DialogTheme) dialog {
	ti := textinput.New()
	ti.CharLimit = MaxInput
	ti.Prompt = "› "
	ti.SetWidth(40)
	return dialog{
		input:  ti,
		drafts: make(map[record.Collection]string),
		theme:  th,
	}
}

func (d *dialog) openAdd(c record.Collection) {
	d.collection = c
	d.editing = nil
	d.input.Placeholder = "New " + strings.ToLower(c.Kind())
	d.input.SetValue(d.drafts[c])
	d.input.CursorEnd()
	d.input.Focus()
}

func (d *dialog) openEdit(c record.Collection, r record.Record) {
	d.collection = c
	d.editing = &r
	d.input.Placeholder = ""
	d.input.SetValue(r.Text)
	d.input.CursorEnd()
	d.input.Focus()
}

// submit returns the entered text and empties the dialog, draft included.
func (d *dialog) submit() string {
	text := d.input.Value()
	if d.editing == nil {
		delete(d.drafts, d.collection)
	}
	d.close()
	return text
}

// cancel keeps an add draft for the next time the dialog opens.
func (d *dialog) cancel() {
	if d.editing == nil {
		d.drafts[d.collection] = d.input.Value()
	}
	d.close()
}

func (d *dialog) close() {
	d.input.Reset()
	d.input.Blur()
	d.editing = nil
}

func (d *dialog) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return cmd
}

func (d *dialog) title() string {
	verb := "Add "
	if d.editing != nil {
		verb = "Edit "
	}
	return verb + d.collection.Kind()
}

// view renders the dialog with its border blended from background toward
// accent by alpha.
func (d *dialog) view(alpha float64, background, accent string) string {
	border := anim.Blend(background, accent, alpha)
	body := lipgloss.JoinVertical(lipgloss.Left,
		d.theme.Title.Render(d.title()),
		"",
		d.input.View(),
		"",
		d.theme.Hint.Render("enter save · esc cancel"),
	)
	return d.theme.Frame.BorderForeground(lipgloss.Color(border)).Render(body)
}

// rise is how many rows below its resting place the dialog is drawn.
func rise(alpha float64) int {
	return int(math.Round(anim.Lerp(2, 0, alpha)))
}
