package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/taskdeck/pkg/record"
)

// PrettyPrint writes collections for people.
type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

// Title writes a collection heading with its item count.
func (pp *PrettyPrint) Title(c record.Collection, count int) {
	t := color.New(color.Bold, color.Underline)
	f := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), c.Title())
	switch count {
	case 1:
		_, _ = f.Fprintf(pp.out(), " - %d %s\n", count, "item")
	default:
		_, _ = f.Fprintf(pp.out(), " - %d %s\n", count, "items")
	}
}

// Collection writes one row per record.
func (pp *PrettyPrint) Collection(c record.Collection, recs ...record.Record) {
	if len(recs) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Faint)
	done := color.New(color.Faint, color.CrossedOut)

	tbl := uitable.New()
	tbl.Separator = " "
	for _, r := range recs {
		text := r.Text
		if r.Done() {
			text = done.Sprint(text)
		}
		row := []interface{}{Marker(c, r), text}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(strconv.FormatInt(r.ID, 10))}, row...)
		}
		tbl.AddRow(row...)
	}
	if pp.ShowID {
		tbl.RightAlign(0)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out())
}

// Marker is the bullet drawn before a record.
func Marker(c record.Collection, r record.Record) string {
	switch {
	case !c.HasCompletion():
		return "•"
	case r.Done():
		return "✓"
	default:
		return "☐"
	}
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
