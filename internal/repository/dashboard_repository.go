package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ============================================
// PostgreSQL Dashboard Repository (read-only aggregates)
// ============================================

type pgDashboardRepository struct {
	pool *pgxpool.Pool
}

func (r *pgDashboardRepository) Counts(ctx context.Context) (members, tasks, workgroups, projectTasks int, err error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM members),
			(SELECT COUNT(*) FROM tasks),
			(SELECT COUNT(*) FROM workgroups),
			(SELECT COUNT(*) FROM project_tasks)
	`
	err = r.pool.QueryRow(ctx, query).Scan(&members, &tasks, &workgroups, &projectTasks)
	return
}

func (r *pgDashboardRepository) TaskStatusCounts(ctx context.Context) ([]StatusCount, error) {
	return r.statusCounts(ctx, `SELECT status, COUNT(*) FROM tasks GROUP BY status ORDER BY status`)
}

func (r *pgDashboardRepository) ProjectTaskStatusCounts(ctx context.Context) ([]StatusCount, error) {
	return r.statusCounts(ctx, `SELECT status, COUNT(*) FROM project_tasks GROUP BY status ORDER BY status`)
}

func (r *pgDashboardRepository) statusCounts(ctx context.Context, query string) ([]StatusCount, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []StatusCount
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}

// MemberHours totals each member's logged work: personal task actual
// minutes where the member is the assignee, plus project task actual hours
// the member reported.
func (r *pgDashboardRepository) MemberHours(ctx context.Context) ([]MemberHours, error) {
	query := `
		SELECT m.id, m.name,
		       COALESCE((SELECT SUM(t.actual_minutes) FROM tasks t WHERE t.assigned_to = m.name), 0),
		       COALESCE((SELECT SUM(pt.actual_hours) FROM project_tasks pt WHERE pt.created_by = m.name), 0)
		FROM members m
		ORDER BY m.name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []MemberHours
	for rows.Next() {
		var (
			mh           MemberHours
			taskMinutes  int64
			projectHours decimal.Decimal
		)
		if err := rows.Scan(&mh.MemberID, &mh.Name, &taskMinutes, &projectHours); err != nil {
			return nil, err
		}
		mh.Hours = decimal.NewFromInt(taskMinutes).
			Div(decimal.NewFromInt(60)).
			Add(projectHours).
			Round(2)
		result = append(result, mh)
	}
	return result, rows.Err()
}
