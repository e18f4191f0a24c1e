package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"ubs-medicacoes/internal/domain/units"
)

type UnitsRepo struct {
	db *sql.DB
}

func NewUnitsRepo(db *sql.DB) *UnitsRepo {
	return &UnitsRepo{db: db}
}

const unitColumns = `
	id, nome, localidade, horario_funcionamento, contato, status,
	criado_em, atualizado_em`

func (r *UnitsRepo) Create(ctx context.Context, u units.Unit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO postos (`+unitColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		u.ID,
		u.Name,
		u.Locality,
		u.Hours,
		u.Contact,
		string(u.Status),
		u.CreatedAt,
		u.UpdatedAt,
	)
	return err
}

func (r *UnitsRepo) Update(ctx context.Context, u units.Unit) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE postos
		SET
			nome = $2,
			localidade = $3,
			horario_funcionamento = $4,
			contato = $5,
			status = $6,
			atualizado_em = $7
		WHERE id = $1
	`,
		u.ID,
		u.Name,
		u.Locality,
		u.Hours,
		u.Contact,
		string(u.Status),
		u.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return units.ErrNotFound
	}
	return nil
}

func (r *UnitsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM postos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return units.ErrNotFound
	}
	return nil
}

func (r *UnitsRepo) GetByID(ctx context.Context, id string) (units.Unit, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return units.Unit{}, units.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+unitColumns+` FROM postos WHERE id = $1`, id)
	u, err := scanUnit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return units.Unit{}, units.ErrNotFound
	}
	return u, err
}

func (r *UnitsRepo) List(ctx context.Context) ([]units.Unit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+unitColumns+` FROM postos ORDER BY nome ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]units.Unit, 0)
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUnit(s scanner) (units.Unit, error) {
	var u units.Unit
	var status string
	if err := s.Scan(
		&u.ID,
		&u.Name,
		&u.Locality,
		&u.Hours,
		&u.Contact,
		&status,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return units.Unit{}, err
	}
	u.Status = units.Status(status)
	return u, nil
}
