package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"tableflip.dev/taskdeck/pkg/record"
)

func TestRecordRequiresChoices(t *testing.T) {
	p := IO{In: strings.NewReader(""), Out: &bytes.Buffer{}}
	_, err := Record(p, record.Notes, nil)
	if !errors.Is(err, ErrNothingToPick) {
		t.Fatalf("expected ErrNothingToPick, got %v", err)
	}
}

func TestNopCloser(t *testing.T) {
	var buf bytes.Buffer
	w := nopCloser{&buf}
	if _, err := w.Write([]byte("hi")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "hi" {
		t.Fatalf("unexpected %q", buf.String())
	}
}
