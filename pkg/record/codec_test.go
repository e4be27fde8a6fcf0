package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeListPreservesServerOrder(t *testing.T) {
	body := []byte(`[{"id":1,"description":"Buy milk"},{"id":2,"description":"Call Bob"}]`)

	got, skipped, err := DecodeList(Tasks, body)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, []Record{
		{ID: 1, Text: "Buy milk"},
		{ID: 2, Text: "Call Bob"},
	}, got)
}

func TestDecodeListUsesCollectionTextField(t *testing.T) {
	body := []byte(`[{"id":7,"content":"remember the keys"},{"id":3,"description":"wrong field"}]`)

	got, skipped, err := DecodeList(Notes, body)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, []Record{{ID: 7, Text: "remember the keys"}}, got)
}

func TestDecodeListCompletedFlag(t *testing.T) {
	body := []byte(`[{"id":1,"description":"a","completed":true},{"id":2,"description":"b"},{"id":3,"description":"c","completed":"yes"}]`)

	got, skipped, err := DecodeList(Goals, body)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, got, 3)
	assert.True(t, got[0].Done())
	assert.Nil(t, got[1].Completed)
	assert.Nil(t, got[2].Completed, "non-boolean completed is ignored")
}

func TestDecodeListSkipsMalformedElements(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []Record
		skipped int
	}{
		{
			name:    "missing id",
			body:    `[{"description":"no id"},{"id":4,"description":"ok"}]`,
			want:    []Record{{ID: 4, Text: "ok"}},
			skipped: 1,
		},
		{
			name:    "string id",
			body:    `[{"id":"4","description":"quoted"}]`,
			want:    []Record{},
			skipped: 1,
		},
		{
			name:    "fractional id",
			body:    `[{"id":4.5,"description":"half"}]`,
			want:    []Record{},
			skipped: 1,
		},
		{
			name:    "null text",
			body:    `[{"id":1,"description":null}]`,
			want:    []Record{},
			skipped: 1,
		},
		{
			name:    "non object elements",
			body:    `[null, 3, "x", [], {"id":9,"description":"kept"}]`,
			want:    []Record{{ID: 9, Text: "kept"}},
			skipped: 4,
		},
		{
			name:    "empty array",
			body:    `[]`,
			want:    []Record{},
			skipped: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, skipped, err := DecodeList(Tasks, []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.skipped, skipped)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeListRejectsNonArray(t *testing.T) {
	for _, body := range []string{`{"id":1}`, `null`, `not json`, ``} {
		_, _, err := DecodeList(Tasks, []byte(body))
		assert.ErrorIs(t, err, ErrNotArray, "body %q", body)
	}
}

func TestEncodeCreateEscapesText(t *testing.T) {
	text := `say "hi" \ then` + "\n\ttab"

	body, err := EncodeCreate(Tasks, text)
	require.NoError(t, err)
	require.True(t, json.Valid(body), "body %s", body)

	var got map[string]string
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, map[string]string{"description": text}, got)
}

func TestEncodeUpdate(t *testing.T) {
	body, err := EncodeUpdate(Goals, `run a "marathon"`, true)
	require.NoError(t, err)
	assert.JSONEq(t, `{"description":"run a \"marathon\"","completed":true}`, string(body))

	body, err = EncodeUpdate(Notes, "plain", true)
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":"plain"}`, string(body))
}

func TestDecodeInput(t *testing.T) {
	in, err := DecodeInput(Tasks, []byte(`{"description":"x","completed":false}`))
	require.NoError(t, err)
	assert.Equal(t, "x", in.Text)
	require.NotNil(t, in.Completed)
	assert.False(t, *in.Completed)

	in, err = DecodeInput(Notes, []byte(`{"content":"n","completed":true}`))
	require.NoError(t, err)
	assert.Nil(t, in.Completed)

	_, err = DecodeInput(Notes, []byte(`{"description":"n"}`))
	assert.ErrorIs(t, err, ErrMissingText)

	_, err = DecodeInput(Tasks, []byte(`{"description":"x","completed":"no"}`))
	assert.Error(t, err)
}

func TestEncodeListRoundTripsThroughDecode(t *testing.T) {
	records := []Record{{ID: 2, Text: "b", Completed: Bool(true)}, {ID: 1, Text: "a", Completed: Bool(false)}}

	body, err := EncodeList(Tasks, records)
	require.NoError(t, err)

	got, skipped, err := DecodeList(Tasks, body)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Equal(t, records, got)

	body, err = EncodeList(Notes, []Record{{ID: 5, Text: "n"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":5,"content":"n"}]`, string(body))
}

func TestParseCollection(t *testing.T) {
	for in, want := range map[string]Collection{
		"tasks": Tasks, "Task": Tasks, "t": Tasks,
		"goals": Goals, "goal": Goals, " g ": Goals,
		"notes": Notes, "NOTE": Notes, "n": Notes,
	} {
		got, err := ParseCollection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCollection("events")
	assert.Error(t, err)
}

func TestCollectionShape(t *testing.T) {
	assert.Equal(t, "/tasks", Tasks.Path())
	assert.Equal(t, "/notes/12", Notes.ItemPath(12))
	assert.Equal(t, "description", Goals.TextField())
	assert.Equal(t, "content", Notes.TextField())
	assert.True(t, Tasks.HasCompletion())
	assert.False(t, Notes.HasCompletion())
	assert.Equal(t, "Goals", Goals.Title())
	assert.False(t, Collection("events").Valid())
}
