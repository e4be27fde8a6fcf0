package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotArray is returned when a list body is not a JSON array.
var ErrNotArray = errors.New("record: body is not a JSON array")

// ErrMissingText is returned when an input body lacks the text field.
var ErrMissingText = errors.New("record: missing text field")

// DecodeList parses a collection listing. Elements that are not objects or
// that lack a numeric id or a string text field are skipped and counted.
// Server order is preserved.
func DecodeList(c Collection, body []byte) ([]Record, int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrNotArray, err)
	}
	if raw == nil {
		// "null"
		return nil, 0, ErrNotArray
	}

	out := make([]Record, 0, len(raw))
	skipped := 0
	for _, elem := range raw {
		r, ok := decodeOne(c, elem)
		if !ok {
			skipped++
			continue
		}
		out = append(out, r)
	}
	return out, skipped, nil
}

func decodeOne(c Collection, elem json.RawMessage) (Record, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(elem, &fields); err != nil || fields == nil {
		return Record{}, false
	}

	rawID, ok := fields["id"]
	if !ok {
		return Record{}, false
	}
	var id int64
	if err := json.Unmarshal(rawID, &id); err != nil {
		return Record{}, false
	}

	rawText, ok := fields[c.TextField()]
	if !ok || isNull(rawText) {
		return Record{}, false
	}
	var text string
	if err := json.Unmarshal(rawText, &text); err != nil {
		return Record{}, false
	}

	r := Record{ID: id, Text: text}
	if rawDone, ok := fields["completed"]; ok && c.HasCompletion() {
		var done bool
		if err := json.Unmarshal(rawDone, &done); err == nil && !isNull(rawDone) {
			r.Completed = &done
		}
	}
	return r, true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// EncodeCreate builds the POST body for a new item.
func EncodeCreate(c Collection, text string) ([]byte, error) {
	return json.Marshal(map[string]string{c.TextField(): text})
}

// EncodeUpdate builds the PUT body for an existing item. Notes never carry a
// completed flag.
func EncodeUpdate(c Collection, text string, completed bool) ([]byte, error) {
	body := map[string]any{c.TextField(): text}
	if c.HasCompletion() {
		body["completed"] = completed
	}
	return json.Marshal(body)
}

// Input is a decoded create or update request body.
type Input struct {
	Text      string
	Completed *bool
}

// DecodeInput parses a create or update body sent by a client.
func DecodeInput(c Collection, body []byte) (Input, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return Input{}, fmt.Errorf("record: invalid body: %w", err)
	}
	rawText, ok := fields[c.TextField()]
	if !ok || isNull(rawText) {
		return Input{}, fmt.Errorf("%w %q", ErrMissingText, c.TextField())
	}
	var in Input
	if err := json.Unmarshal(rawText, &in.Text); err != nil {
		return Input{}, fmt.Errorf("record: field %q: %w", c.TextField(), err)
	}
	if rawDone, ok := fields["completed"]; ok && c.HasCompletion() && !isNull(rawDone) {
		var done bool
		if err := json.Unmarshal(rawDone, &done); err != nil {
			return Input{}, fmt.Errorf("record: field \"completed\": %w", err)
		}
		in.Completed = &done
	}
	return in, nil
}

// Wire returns the JSON shape of r as served for collection c.
func Wire(c Collection, r Record) map[string]any {
	out := map[string]any{
		"id":          r.ID,
		c.TextField(): r.Text,
	}
	if c.HasCompletion() {
		out["completed"] = r.Done()
	}
	return out
}

// EncodeList renders records as a collection listing.
func EncodeList(c Collection, records []Record) ([]byte, error) {
	out := make([]map[string]any, 0, len(records))
	for _, r := range records {
		out = append(out, Wire(c, r))
	}
	return json.Marshal(out)
}
