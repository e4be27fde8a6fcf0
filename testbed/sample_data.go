package main

import (
	"context"

	"tableflip.dev/taskdeck/pkg/record"
	"tableflip.dev/taskdeck/pkg/store"
)

type sample struct {
	text string
	done bool
}

var samples = map[record.Collection][]sample{
	record.Tasks: {
		{text: "Draft release notes"},
		{text: "Review pull requests", done: true},
		{text: "Write an extra long task description so we can verify that rows wider than the terminal are truncated with an ellipsis instead of wrapping"},
		{text: "Book dentist appointment"},
	},
	record.Goals: {
		{text: "Run a 10k"},
		{text: "Read twelve books this year", done: true},
	},
	record.Notes: {
		{text: "The wifi password is on the fridge"},
		{text: "Ideas: weekly review template, inbox zero on Fridays"},
	},
}

func seed(ctx context.Context, p store.Persistence) error {
	for _, c := range record.All {
		for _, s := range samples[c] {
			in := record.Input{Text: s.text}
			if c.HasCompletion() {
				done := s.done
				in.Completed = &done
			}
			if _, err := p.Create(ctx, c, in); err != nil {
				return err
			}
		}
	}
	return nil
}
