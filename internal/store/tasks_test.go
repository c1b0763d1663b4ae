package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/taskd/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.DatabaseConfig{
		Driver: types.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "tasks.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func strPtr(s string) *string { return &s }

func datePtr(t *testing.T, s string) *types.Date {
	t.Helper()
	d, err := types.ParseDate(s)
	require.NoError(t, err)
	return &d
}

func TestInsertManyAssignsSequentialIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.InsertMany(ctx, []types.NewTask{
		{Title: "first", Status: "open", DueDate: datePtr(t, "2025-01-10")},
		{Title: "second", Status: "open", Description: strPtr("with notes")},
		{Title: "third", Status: "done"},
	})
	require.NoError(t, err)
	require.Len(t, created, 3)

	// Results are in submission order with store-assigned ids.
	assert.Equal(t, "first", created[0].Title)
	assert.Equal(t, "second", created[1].Title)
	assert.Equal(t, "third", created[2].Title)
	assert.Greater(t, created[0].ID, int64(0))
	assert.Equal(t, created[0].ID+1, created[1].ID)
	assert.Equal(t, created[1].ID+1, created[2].ID)
}

func TestInsertManyRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.InsertMany(ctx, []types.NewTask{
		{Title: "roundtrip", Status: "open", Description: strPtr("check fields"), DueDate: datePtr(t, "2025-06-30")},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)

	got, err := s.GetByID(ctx, created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, created[0].ID, got.ID)
	assert.Equal(t, "roundtrip", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, "check fields", *got.Description)
	assert.Equal(t, "open", got.Status)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2025-06-30", got.DueDate.String())
}

func TestInsertManyEmptyBatch(t *testing.T) {
	s := newTestStore(t)

	created, err := s.InsertMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestListAllEmptyIsNotAnError(t *testing.T) {
	s := newTestStore(t)

	tasks, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestGetByIDNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetByID(context.Background(), 12345)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestListByStatusExactMatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.InsertMany(ctx, []types.NewTask{
		{Title: "a", Status: "done"},
		{Title: "b", Status: "open"},
		{Title: "c", Status: "done"},
		{Title: "d", Status: "Done"}, // exact match is case-sensitive
	})
	require.NoError(t, err)

	done, err := s.ListByStatus(ctx, "done")
	require.NoError(t, err)
	require.Len(t, done, 2)
	assert.Equal(t, "a", done[0].Title)
	assert.Equal(t, "c", done[1].Title)

	none, err := s.ListByStatus(ctx, "archived")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateByIDPartial(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.InsertMany(ctx, []types.NewTask{
		{Title: "A", Status: "open", Description: strPtr("keep me"), DueDate: datePtr(t, "2025-01-10")},
	})
	require.NoError(t, err)
	id := created[0].ID

	updated, err := s.UpdateByID(ctx, id, types.TaskPatch{Status: strPtr("closed")})
	require.NoError(t, err)

	// Only status changed.
	assert.Equal(t, "closed", updated.Status)
	assert.Equal(t, "A", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "keep me", *updated.Description)
	require.NotNil(t, updated.DueDate)
	assert.Equal(t, "2025-01-10", updated.DueDate.String())

	// The update persisted.
	got, err := s.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateByIDClearsNullableFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.InsertMany(ctx, []types.NewTask{
		{Title: "A", Status: "open", Description: strPtr("to clear"), DueDate: datePtr(t, "2025-01-10")},
	})
	require.NoError(t, err)

	updated, err := s.UpdateByID(ctx, created[0].ID, types.TaskPatch{
		HasDescription: true,
		HasDueDate:     true,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Description)
	assert.Nil(t, updated.DueDate)

	got, err := s.GetByID(ctx, created[0].ID)
	require.NoError(t, err)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.DueDate)
}

func TestUpdateByIDNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateByID(context.Background(), 999, types.TaskPatch{Status: strPtr("x")})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeleteByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.InsertMany(ctx, []types.NewTask{{Title: "doomed", Status: "open"}})
	require.NoError(t, err)
	id := created[0].ID

	require.NoError(t, s.DeleteByID(ctx, id))

	_, err = s.GetByID(ctx, id)
	assert.ErrorIs(t, err, types.ErrNotFound)

	// Hard delete; a second delete reports not found.
	assert.ErrorIs(t, s.DeleteByID(ctx, id), types.ErrNotFound)
}

func TestInsertManyIsAtomic(t *testing.T) {
	s := newTestStore(t)

	// Cancel the context mid-batch: nothing may be committed.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.InsertMany(ctx, []types.NewTask{
		{Title: "a", Status: "open"},
		{Title: "b", Status: "open"},
	})
	require.Error(t, err)

	tasks, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(types.DatabaseConfig{Driver: "oracle", DSN: "x"})
	assert.ErrorIs(t, err, types.ErrDriverUnknown)
}

func TestRebind(t *testing.T) {
	sqlite := &Store{driver: types.DriverSQLite}
	postgres := &Store{driver: types.DriverPostgres}

	q := "INSERT INTO tasks (title, status) VALUES (?, ?)"
	assert.Equal(t, q, sqlite.rebind(q))
	assert.Equal(t, "INSERT INTO tasks (title, status) VALUES ($1, $2)", postgres.rebind(q))
}

func TestSchemaBootstrapIsIdempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "tasks.db")

	s1, err := Open(types.DatabaseConfig{Driver: types.DriverSQLite, DSN: dsn})
	require.NoError(t, err)
	_, err = s1.InsertMany(context.Background(), []types.NewTask{{Title: "persisted", Status: "open"}})
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	// Reopening the same file must keep existing rows.
	s2, err := Open(types.DatabaseConfig{Driver: types.DriverSQLite, DSN: dsn})
	require.NoError(t, err)
	defer s2.Close()

	tasks, err := s2.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "persisted", tasks[0].Title)
}

func TestDueDateSurvivesReload(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	day := types.DateOf(2024, time.February, 29)
	created, err := s.InsertMany(ctx, []types.NewTask{{Title: "leap", Status: "open", DueDate: &day}})
	require.NoError(t, err)

	got, err := s.GetByID(ctx, created[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got.DueDate)
	assert.True(t, day.Equal(*got.DueDate))
}
