package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================================
// PostgreSQL Workspace Repository
// ============================================

type pgWorkspaceRepository struct {
	pool *pgxpool.Pool
}

func (r *pgWorkspaceRepository) Create(ctx context.Context, workspace *Workspace) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO workspaces (workgroup_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	if err := tx.QueryRow(ctx, query,
		workspace.WorkgroupID, workspace.Name, workspace.Description,
	).Scan(&workspace.ID, &workspace.CreatedAt, &workspace.UpdatedAt); err != nil {
		return err
	}

	for _, memberID := range workspace.MemberIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO workspace_members (workspace_id, member_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			workspace.ID, memberID,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *pgWorkspaceRepository) FindByID(ctx context.Context, id string) (*Workspace, error) {
	query := `
		SELECT id, workgroup_id, name, description, created_at, updated_at
		FROM workspaces WHERE id = $1
	`
	ws := &Workspace{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ws.ID, &ws.WorkgroupID, &ws.Name, &ws.Description, &ws.CreatedAt, &ws.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ws.MemberIDs, err = r.findMemberIDs(ctx, ws.ID)
	if err != nil {
		return nil, err
	}
	return ws, nil
}

func (r *pgWorkspaceRepository) FindByWorkgroupID(ctx context.Context, workgroupID string) ([]*Workspace, error) {
	query := `
		SELECT id, workgroup_id, name, description, created_at, updated_at
		FROM workspaces WHERE workgroup_id = $1
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, workgroupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workspaces []*Workspace
	for rows.Next() {
		ws := &Workspace{}
		if err := rows.Scan(
			&ws.ID, &ws.WorkgroupID, &ws.Name, &ws.Description, &ws.CreatedAt, &ws.UpdatedAt,
		); err != nil {
			return nil, err
		}
		workspaces = append(workspaces, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, ws := range workspaces {
		ws.MemberIDs, err = r.findMemberIDs(ctx, ws.ID)
		if err != nil {
			return nil, err
		}
	}
	return workspaces, nil
}

func (r *pgWorkspaceRepository) Update(ctx context.Context, workspace *Workspace) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE workspaces SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	if err := tx.QueryRow(ctx, query,
		workspace.ID, workspace.Name, workspace.Description,
	).Scan(&workspace.UpdatedAt); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM workspace_members WHERE workspace_id = $1`, workspace.ID); err != nil {
		return err
	}
	for _, memberID := range workspace.MemberIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO workspace_members (workspace_id, member_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			workspace.ID, memberID,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *pgWorkspaceRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM workspaces WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *pgWorkspaceRepository) findMemberIDs(ctx context.Context, workspaceID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT member_id FROM workspace_members WHERE workspace_id = $1`, workspaceID)
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
