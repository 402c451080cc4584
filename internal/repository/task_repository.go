package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================================
// PostgreSQL Task Repository (personal tasks)
// ============================================

type pgTaskRepository struct {
	pool *pgxpool.Pool
}

func (r *pgTaskRepository) Create(ctx context.Context, task *Task) error {
	query := `
		INSERT INTO tasks (name, priority, status, assigned_to, start_date, end_date, estimate_minutes, actual_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		task.Name, task.Priority, task.Status, task.AssignedTo,
		task.StartDate, task.EndDate, task.EstimateMinutes, task.ActualMinutes,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *pgTaskRepository) FindByID(ctx context.Context, id string) (*Task, error) {
	query := `
		SELECT id, name, priority, status, assigned_to, start_date, end_date,
		       estimate_minutes, actual_minutes, created_at, updated_at
		FROM tasks WHERE id = $1
	`
	t := &Task{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Priority, &t.Status, &t.AssignedTo,
		&t.StartDate, &t.EndDate, &t.EstimateMinutes, &t.ActualMinutes,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *pgTaskRepository) FindAll(ctx context.Context) ([]*Task, error) {
	query := `
		SELECT id, name, priority, status, assigned_to, start_date, end_date,
		       estimate_minutes, actual_minutes, created_at, updated_at
		FROM tasks ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		t := &Task{}
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Priority, &t.Status, &t.AssignedTo,
			&t.StartDate, &t.EndDate, &t.EstimateMinutes, &t.ActualMinutes,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *pgTaskRepository) Update(ctx context.Context, task *Task) error {
	query := `
		UPDATE tasks SET name = $2, priority = $3, status = $4, assigned_to = $5,
		       start_date = $6, end_date = $7, estimate_minutes = $8, actual_minutes = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.pool.QueryRow(ctx, query,
		task.ID, task.Name, task.Priority, task.Status, task.AssignedTo,
		task.StartDate, task.EndDate, task.EstimateMinutes, task.ActualMinutes,
	).Scan(&task.UpdatedAt)
}

func (r *pgTaskRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
