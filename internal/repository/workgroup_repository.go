package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================================
// PostgreSQL Workgroup Repository
// ============================================

type pgWorkgroupRepository struct {
	pool *pgxpool.Pool
}

func (r *pgWorkgroupRepository) Create(ctx context.Context, workgroup *Workgroup) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO workgroups (name, description, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	if err := tx.QueryRow(ctx, query,
		workgroup.Name, workgroup.Description, workgroup.CreatedBy,
	).Scan(&workgroup.ID, &workgroup.CreatedAt, &workgroup.UpdatedAt); err != nil {
		return err
	}

	for _, memberID := range workgroup.MemberIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO workgroup_members (workgroup_id, member_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			workgroup.ID, memberID,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *pgWorkgroupRepository) FindByID(ctx context.Context, id string) (*Workgroup, error) {
	query := `
		SELECT id, name, description, created_by, created_at, updated_at
		FROM workgroups WHERE id = $1
	`
	wg := &Workgroup{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&wg.ID, &wg.Name, &wg.Description, &wg.CreatedBy, &wg.CreatedAt, &wg.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	wg.MemberIDs, err = r.findMemberIDs(ctx, wg.ID)
	if err != nil {
		return nil, err
	}
	return wg, nil
}

func (r *pgWorkgroupRepository) FindAll(ctx context.Context) ([]*Workgroup, error) {
	query := `
		SELECT id, name, description, created_by, created_at, updated_at
		FROM workgroups ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workgroups []*Workgroup
	for rows.Next() {
		wg := &Workgroup{}
		if err := rows.Scan(
			&wg.ID, &wg.Name, &wg.Description, &wg.CreatedBy, &wg.CreatedAt, &wg.UpdatedAt,
		); err != nil {
			return nil, err
		}
		workgroups = append(workgroups, wg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, wg := range workgroups {
		wg.MemberIDs, err = r.findMemberIDs(ctx, wg.ID)
		if err != nil {
			return nil, err
		}
	}
	return workgroups, nil
}

func (r *pgWorkgroupRepository) Update(ctx context.Context, workgroup *Workgroup) error {
	query := `
		UPDATE workgroups SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.pool.QueryRow(ctx, query,
		workgroup.ID, workgroup.Name, workgroup.Description,
	).Scan(&workgroup.UpdatedAt)
}

func (r *pgWorkgroupRepository) UpdateMembers(ctx context.Context, id string, memberIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM workgroup_members WHERE workgroup_id = $1`, id); err != nil {
		return err
	}
	for _, memberID := range memberIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO workgroup_members (workgroup_id, member_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			id, memberID,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *pgWorkgroupRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM workgroups WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *pgWorkgroupRepository) findMemberIDs(ctx context.Context, workgroupID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT member_id FROM workgroup_members WHERE workgroup_id = $1`, workgroupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberIDs []string
	for rows.Next() {
		var memberID string
		if err := rows.Scan(&memberID); err != nil {
			return nil, err
		}
		memberIDs = append(memberIDs, memberID)
	}
	return memberIDs, rows.Err()
}
