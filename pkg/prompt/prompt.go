// Package prompt asks for command input interactively.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/taskdeck/pkg/record"
)

// ErrNothingToPick is returned when a selection has no choices.
var ErrNothingToPick = errors.New("prompt: nothing to pick from")

// IO is where prompts read keys and draw.
type IO struct {
	In  io.Reader
	Out io.Writer
}

// Text asks for a non-empty line of at most limit characters.
func Text(p IO, label string, limit int) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("text must not be empty")
			}
			if limit > 0 && len([]rune(s)) > limit {
				return fmt.Errorf("text must be at most %d characters", limit)
			}
			return nil
		},
		Stdin:  io.NopCloser(p.In),
		Stdout: nopCloser{p.Out},
	}
	return prompt.Run()
}

// Record asks the user to pick one of recs.
func Record(p IO, c record.Collection, recs []record.Record) (record.Record, error) {
	if len(recs) == 0 {
		return record.Record{}, fmt.Errorf("%w: no %s", ErrNothingToPick, c)
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .ID | faint }} {{ .Text | bold }}",
		Inactive: "   {{ .ID | faint }} {{ .Text }}",
		Selected: "{{ .Text | bold }}",
	}

	searcher := func(input string, index int) bool {
		text := strings.ToLower(recs[index].Text)
		return strings.Contains(text, strings.ToLower(input))
	}

	sel := promptui.Select{
		HideHelp:  true,
		Label:     c.Kind(),
		Items:     recs,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     io.NopCloser(p.In),
		Stdout:    nopCloser{p.Out},
	}

	i, _, err := sel.Run()
	if err != nil {
		return record.Record{}, err
	}
	return recs[i], nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
