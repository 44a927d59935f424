package store

import (
	"database/sql"
	"fmt"
	"time"
)

func (s *Store) ListTasks() ([]Task, error) {
	rows, err := s.db.Query(
		`SELECT id, text, completed, position, assigned, created_at, completed_at
		 FROM tasks ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) GetTask(id string) (*Task, error) {
	row := s.db.QueryRow(
		`SELECT id, text, completed, position, assigned, created_at, completed_at
		 FROM tasks WHERE id = ?`, id,
	)
	t, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return &t, nil
}

// ReplaceTasks rewrites the whole task list in one transaction. Mutations
// that renumber positions (add, reorder) persist through this.
func (s *Store) ReplaceTasks(tasks []Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin replace tasks: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	for _, t := range tasks {
		if err := execInsertTask(tx, t); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) UpdateTask(t Task) error {
	var completedAt any
	if t.CompletedAt != nil {
		completedAt = t.CompletedAt.UTC().Format(time.RFC3339)
	}
	_, err := s.db.Exec(
		`UPDATE tasks SET text = ?, completed = ?, position = ?, assigned = ?, completed_at = ? WHERE id = ?`,
		t.Text, boolToInt(t.Completed), t.Order, boolToInt(t.Assigned), completedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update task %s: %w", t.ID, err)
	}
	return nil
}

func (s *Store) DeleteTask(id string) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

func (s *Store) DeleteCompletedTasks() error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE completed = 1`)
	if err != nil {
		return fmt.Errorf("delete completed tasks: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(r rowScanner) (Task, error) {
	var t Task
	var completed, assigned int
	var createdAt string
	var completedAt sql.NullString

	if err := r.Scan(&t.ID, &t.Text, &completed, &t.Order, &assigned, &createdAt, &completedAt); err != nil {
		return t, err
	}
	t.Completed = completed == 1
	t.Assigned = assigned == 1
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if completedAt.Valid {
		at, _ := time.Parse(time.RFC3339, completedAt.String)
		t.CompletedAt = &at
	}
	return t, nil
}

func execInsertTask(tx *sql.Tx, t Task) error {
	var completedAt any
	if t.CompletedAt != nil {
		completedAt = t.CompletedAt.UTC().Format(time.RFC3339)
	}
	_, err := tx.Exec(
		`INSERT INTO tasks (id, text, completed, position, assigned, created_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Text, boolToInt(t.Completed), t.Order, boolToInt(t.Assigned),
		t.CreatedAt.UTC().Format(time.RFC3339), completedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task %s: %w", t.ID, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
