package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tableflip.dev/taskdeck/pkg/record"
)

func backends(t *testing.T) map[string]Persistence {
	t.Helper()
	disk, err := Load(t.TempDir())
	require.NoError(t, err)
	return map[string]Persistence{
		"memory": NewMemory(),
		"diskv":  disk,
	}
}

func TestPersistence(t *testing.T) {
	ctx := context.Background()
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			first, err := p.Create(ctx, record.Tasks, record.Input{Text: "Buy milk"})
			require.NoError(t, err)
			second, err := p.Create(ctx, record.Tasks, record.Input{Text: "Call Bob", Completed: record.Bool(true)})
			require.NoError(t, err)

			assert.Equal(t, int64(1), first.ID)
			assert.Equal(t, int64(2), second.ID)
			assert.False(t, first.Done())
			require.NotNil(t, first.Completed)

			got, err := p.List(ctx, record.Tasks)
			require.NoError(t, err)
			assert.Equal(t, []record.Record{first, second}, got)

			updated, err := p.Update(ctx, record.Tasks, first.ID, record.Input{Text: "Buy oat milk"})
			require.NoError(t, err)
			assert.Equal(t, "Buy oat milk", updated.Text)
			assert.False(t, updated.Done(), "completion kept when not given")

			require.NoError(t, p.Delete(ctx, record.Tasks, second.ID))
			got, err = p.List(ctx, record.Tasks)
			require.NoError(t, err)
			assert.Equal(t, []record.Record{updated}, got)

			third, err := p.Create(ctx, record.Tasks, record.Input{Text: "again"})
			require.NoError(t, err)
			assert.Equal(t, int64(3), third.ID, "ids are not reused")
		})
	}
}

func TestPersistenceCollectionsAreSeparate(t *testing.T) {
	ctx := context.Background()
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := p.Create(ctx, record.Tasks, record.Input{Text: "task"})
			require.NoError(t, err)
			note, err := p.Create(ctx, record.Notes, record.Input{Text: "note", Completed: record.Bool(true)})
			require.NoError(t, err)

			assert.Equal(t, int64(1), note.ID)
			assert.Nil(t, note.Completed, "notes never carry completion")

			goals, err := p.List(ctx, record.Goals)
			require.NoError(t, err)
			assert.NotNil(t, goals)
			assert.Empty(t, goals)
		})
	}
}

func TestPersistenceNotFound(t *testing.T) {
	ctx := context.Background()
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := p.Update(ctx, record.Goals, 42, record.Input{Text: "x"})
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, p.Delete(ctx, record.Goals, 42), ErrNotFound)
		})
	}
}

func TestDiskSurvivesReload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	p, err := Load(dir)
	require.NoError(t, err)
	_, err = p.Create(ctx, record.Goals, record.Input{Text: "Run 10k"})
	require.NoError(t, err)

	p, err = Load(dir)
	require.NoError(t, err)
	got, err := p.List(ctx, record.Goals)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Run 10k", got[0].Text)

	next, err := p.Create(ctx, record.Goals, record.Input{Text: "Swim"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.ID)
}

func TestDiskLogsUnreadableRecords(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	core, logs := observer.New(zap.WarnLevel)

	p, err := Load(dir, WithLogger(zap.New(core)))
	require.NoError(t, err)
	_, err = p.Create(ctx, record.Tasks, record.Input{Text: "Buy milk"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks", "7"), []byte("not json"), 0o644))

	got, err := p.List(ctx, record.Tasks)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Buy milk", got[0].Text)

	entries := logs.FilterMessage("skipping unreadable record").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "tasks-7", entries[0].ContextMap()["key"])
}

func TestLoadRequiresPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestKeyTransformRoundTrip(t *testing.T) {
	key := toKey(record.Notes, 12)
	assert.Equal(t, "notes-12", key)
	pk := keyToPathTransform(key)
	assert.Equal(t, []string{"notes"}, pk.Path)
	assert.Equal(t, "12", pk.FileName)
	assert.Equal(t, key, pathToKeyTransform(pk))
}
