package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================================
// PostgreSQL Member Repository
// ============================================

type pgMemberRepository struct {
	pool *pgxpool.Pool
}

func (r *pgMemberRepository) Create(ctx context.Context, member *Member) error {
	query := `
		INSERT INTO members (name, email, phone, designation, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		member.Name, member.Email, member.Phone, member.Designation, member.Role,
	).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)
}

func (r *pgMemberRepository) FindByID(ctx context.Context, id string) (*Member, error) {
	query := `
		SELECT id, name, email, phone, designation, role, created_at, updated_at
		FROM members WHERE id = $1
	`
	m := &Member{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.Email, &m.Phone, &m.Designation,
		&m.Role, &m.CreatedAt, &m.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *pgMemberRepository) FindAll(ctx context.Context) ([]*Member, error) {
	query := `
		SELECT id, name, email, phone, designation, role, created_at, updated_at
		FROM members ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m := &Member{}
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &m.Phone, &m.Designation,
			&m.Role, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

func (r *pgMemberRepository) Update(ctx context.Context, member *Member) error {
	query := `
		UPDATE members SET name = $2, email = $3, phone = $4, designation = $5, role = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.pool.QueryRow(ctx, query,
		member.ID, member.Name, member.Email, member.Phone, member.Designation, member.Role,
	).Scan(&member.UpdatedAt)
}

func (r *pgMemberRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM members WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
