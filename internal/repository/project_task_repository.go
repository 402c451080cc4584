package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================================
// PostgreSQL Project Task Repository
// ============================================

type pgProjectTaskRepository struct {
	pool *pgxpool.Pool
}

func (r *pgProjectTaskRepository) Create(ctx context.Context, task *ProjectTask) error {
	query := `
		INSERT INTO project_tasks (workspace_id, project_name, task_name, priority, status,
		       created_by, start_date, end_date, estimate, actual_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		task.WorkspaceID, task.ProjectName, task.TaskName, task.Priority, task.Status,
		task.CreatedBy, task.StartDate, task.EndDate, task.Estimate, task.ActualHours,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *pgProjectTaskRepository) FindByID(ctx context.Context, id string) (*ProjectTask, error) {
	query := `
		SELECT id, workspace_id, project_name, task_name, priority, status,
		       created_by, start_date, end_date, estimate, actual_hours, created_at, updated_at
		FROM project_tasks WHERE id = $1
	`
	t := &ProjectTask{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.WorkspaceID, &t.ProjectName, &t.TaskName, &t.Priority, &t.Status,
		&t.CreatedBy, &t.StartDate, &t.EndDate, &t.Estimate, &t.ActualHours,
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

func (r *pgProjectTaskRepository) FindByWorkspaceID(ctx context.Context, workspaceID, status string) ([]*ProjectTask, error) {
	query := `
		SELECT id, workspace_id, project_name, task_name, priority, status,
		       created_by, start_date, end_date, estimate, actual_hours, created_at, updated_at
		FROM project_tasks
		WHERE workspace_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, workspaceID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*ProjectTask
	for rows.Next() {
		t := &ProjectTask{}
		if err := rows.Scan(
			&t.ID, &t.WorkspaceID, &t.ProjectName, &t.TaskName, &t.Priority, &t.Status,
			&t.CreatedBy, &t.StartDate, &t.EndDate, &t.Estimate, &t.ActualHours,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *pgProjectTaskRepository) Update(ctx context.Context, task *ProjectTask) error {
	query := `
		UPDATE project_tasks SET project_name = $2, task_name = $3, priority = $4, status = $5,
		       created_by = $6, start_date = $7, end_date = $8, estimate = $9, actual_hours = $10,
		       updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.pool.QueryRow(ctx, query,
		task.ID, task.ProjectName, task.TaskName, task.Priority, task.Status,
		task.CreatedBy, task.StartDate, task.EndDate, task.Estimate, task.ActualHours,
	).Scan(&task.UpdatedAt)
}

func (r *pgProjectTaskRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM project_tasks WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
