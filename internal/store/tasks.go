package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taskforge/taskd/pkg/types"
)

const taskColumns = "id, title, description, status, due_date"

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask hydrates one row into a Task.
func scanTask(row rowScanner) (types.Task, error) {
	var (
		t    types.Task
		desc sql.NullString
		due  sql.Null[types.Date]
	)
	if err := row.Scan(&t.ID, &t.Title, &desc, &t.Status, &due); err != nil {
		return types.Task{}, err
	}
	if desc.Valid {
		t.Description = &desc.String
	}
	if due.Valid {
		d := due.V
		t.DueDate = &d
	}
	return t, nil
}

// InsertMany appends all records in a single transaction; on any failure
// none are committed. The generated IDs are captured by the insert
// statements themselves, so the returned rows are exactly the ones
// created by this call regardless of concurrent writers. Results are in
// submission order.
func (s *Store) InsertMany(ctx context.Context, records []types.NewTask) ([]types.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := s.rebind("INSERT INTO tasks (title, description, status, due_date) VALUES (?, ?, ?, ?) RETURNING id")

	created := make([]types.Task, 0, len(records))
	for _, r := range records {
		var id int64
		if err := tx.QueryRowContext(ctx, query, r.Title, r.Description, r.Status, r.DueDate).Scan(&id); err != nil {
			return nil, fmt.Errorf("inserting task: %w", err)
		}
		created = append(created, types.Task{
			ID:          id,
			Title:       r.Title,
			Description: r.Description,
			Status:      r.Status,
			DueDate:     r.DueDate,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing insert: %w", err)
	}
	return created, nil
}

// ListAll returns all tasks ordered by ID. No rows is not an error; the
// result is an empty slice.
func (s *Store) ListAll(ctx context.Context) ([]types.Task, error) {
	return s.queryTasks(ctx, "SELECT "+taskColumns+" FROM tasks ORDER BY id")
}

// ListByStatus returns all tasks whose status exactly equals the given
// value, ordered by ID. Empty filter values are rejected by the caller.
func (s *Store) ListByStatus(ctx context.Context, status string) ([]types.Task, error) {
	return s.queryTasks(ctx, s.rebind("SELECT "+taskColumns+" FROM tasks WHERE status = ? ORDER BY id"), status)
}

func (s *Store) queryTasks(ctx context.Context, query string, args ...any) ([]types.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]types.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// GetByID retrieves a task by ID. Returns ErrNotFound if absent.
func (s *Store) GetByID(ctx context.Context, id int64) (types.Task, error) {
	row := s.db.QueryRowContext(ctx, s.rebind("SELECT "+taskColumns+" FROM tasks WHERE id = ?"), id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return types.Task{}, types.ErrNotFound
	}
	if err != nil {
		return types.Task{}, fmt.Errorf("getting task %d: %w", id, err)
	}
	return t, nil
}

// UpdateByID applies the present fields of the patch to the task and
// returns the updated row. Unspecified fields retain their prior values.
// Returns ErrNotFound if no task with that ID exists.
func (s *Store) UpdateByID(ctx context.Context, id int64, patch types.TaskPatch) (types.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Task{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, s.rebind("SELECT "+taskColumns+" FROM tasks WHERE id = ?"), id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return types.Task{}, types.ErrNotFound
	}
	if err != nil {
		return types.Task{}, fmt.Errorf("loading task %d: %w", id, err)
	}

	patch.Apply(&t)

	_, err = tx.ExecContext(ctx,
		s.rebind("UPDATE tasks SET title = ?, description = ?, status = ?, due_date = ? WHERE id = ?"),
		t.Title, t.Description, t.Status, t.DueDate, id,
	)
	if err != nil {
		return types.Task{}, fmt.Errorf("updating task %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return types.Task{}, fmt.Errorf("committing update: %w", err)
	}
	return t, nil
}

// DeleteByID removes a task permanently. Returns ErrNotFound if no task
// with that ID exists.
func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM tasks WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	if affected == 0 {
		return types.ErrNotFound
	}
	return nil
}
