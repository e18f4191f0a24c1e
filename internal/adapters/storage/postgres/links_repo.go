package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ubs-medicacoes/internal/domain/links"
)

// LinksRepo grava usuario_posto e mantém postos.responsavel_id em sincronia,
// sempre na mesma transação.
type LinksRepo struct {
	db *sql.DB
}

// upsertLinkSQL: duas trocas simultâneas na mesma UBS passam pelo DELETE e
// disputam o INSERT; a segunda espera a primeira e sobrescreve o responsável.
const upsertLinkSQL = `
	INSERT INTO usuario_posto (user_id, posto_id, criado_em)
	VALUES ($1,$2,$3)
	ON CONFLICT (posto_id) DO UPDATE
	SET user_id = EXCLUDED.user_id, criado_em = EXCLUDED.criado_em
`

func NewLinksRepo(db *sql.DB) *LinksRepo {
	return &LinksRepo{db: db}
}

func (r *LinksRepo) ReplaceForUnit(ctx context.Context, unitID, userID string, at time.Time) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM usuario_posto WHERE posto_id = $1`, unitID); err != nil {
			return err
		}
		if userID != "" {
			if _, err := tx.ExecContext(ctx, upsertLinkSQL, userID, unitID, at); err != nil {
				return err
			}
		}
		_, err := tx.ExecContext(ctx, `
			UPDATE postos SET responsavel_id = NULLIF($2, ''), atualizado_em = $3
			WHERE id = $1
		`, unitID, userID, at)
		return err
	})
}

func (r *LinksRepo) ReplaceForUser(ctx context.Context, userID string, unitIDs []string, at time.Time) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM usuario_posto WHERE user_id = $1 OR posto_id = ANY($2)
		`, userID, unitIDs); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE postos SET responsavel_id = NULL WHERE responsavel_id = $1
		`, userID); err != nil {
			return err
		}
		for _, unitID := range unitIDs {
			if _, err := tx.ExecContext(ctx, upsertLinkSQL, userID, unitID, at); err != nil {
				return err
			}
		}
		_, err := tx.ExecContext(ctx, `
			UPDATE postos SET responsavel_id = $1, atualizado_em = $3
			WHERE id = ANY($2)
		`, userID, unitIDs, at)
		return err
	})
}

func (r *LinksRepo) Delete(ctx context.Context, userID, unitID string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			DELETE FROM usuario_posto WHERE user_id = $1 AND posto_id = $2
		`, userID, unitID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return links.ErrNotFound
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE postos SET responsavel_id = NULL WHERE id = $1 AND responsavel_id = $2
		`, unitID, userID)
		return err
	})
}

func (r *LinksRepo) DeleteByUnit(ctx context.Context, unitID string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM usuario_posto WHERE posto_id = $1`, unitID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `UPDATE postos SET responsavel_id = NULL WHERE id = $1`, unitID)
		return err
	})
}

func (r *LinksRepo) DeleteByUser(ctx context.Context, userID string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM usuario_posto WHERE user_id = $1`, userID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `UPDATE postos SET responsavel_id = NULL WHERE responsavel_id = $1`, userID)
		return err
	})
}

func (r *LinksRepo) GetByUnit(ctx context.Context, unitID string) (links.Link, error) {
	var l links.Link
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, posto_id, criado_em FROM usuario_posto WHERE posto_id = $1
	`, unitID).Scan(&l.UserID, &l.UnitID, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return links.Link{}, links.ErrNotFound
	}
	return l, err
}

func (r *LinksRepo) ListByUser(ctx context.Context, userID string) ([]links.Link, error) {
	return r.list(ctx, `
		SELECT user_id, posto_id, criado_em FROM usuario_posto
		WHERE user_id = $1 ORDER BY posto_id
	`, userID)
}

func (r *LinksRepo) List(ctx context.Context) ([]links.Link, error) {
	return r.list(ctx, `SELECT user_id, posto_id, criado_em FROM usuario_posto ORDER BY posto_id`)
}

func (r *LinksRepo) list(ctx context.Context, query string, args ...any) ([]links.Link, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]links.Link, 0)
	for rows.Next() {
		var l links.Link
		if err := rows.Scan(&l.UserID, &l.UnitID, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
