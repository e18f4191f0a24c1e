package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ubs-medicacoes/internal/domain/checks"
)

type ChecksRepo struct {
	db *sql.DB
}

func NewChecksRepo(db *sql.DB) *ChecksRepo {
	return &ChecksRepo{db: db}
}

const checkColumns = `user_id, posto_id, dia::text, manha, tarde, manha_em, tarde_em`

// Uma query por turno: o WHERE NOT <flag> do upsert garante que a marcação
// nunca é sobrescrita, mesmo com requisições concorrentes.
var markQueries = map[checks.Period]string{
	checks.PeriodMorning: `
		INSERT INTO checagens_diarias (user_id, posto_id, dia, manha, manha_em)
		VALUES ($1, $2, $3::text::date, true, $4)
		ON CONFLICT (user_id, posto_id, dia) DO UPDATE
			SET manha = true, manha_em = EXCLUDED.manha_em
			WHERE NOT checagens_diarias.manha
		RETURNING ` + checkColumns,
	checks.PeriodAfternoon: `
		INSERT INTO checagens_diarias (user_id, posto_id, dia, tarde, tarde_em)
		VALUES ($1, $2, $3::text::date, true, $4)
		ON CONFLICT (user_id, posto_id, dia) DO UPDATE
			SET tarde = true, tarde_em = EXCLUDED.tarde_em
			WHERE NOT checagens_diarias.tarde
		RETURNING ` + checkColumns,
}

func (r *ChecksRepo) Mark(ctx context.Context, userID, unitID, day string, p checks.Period, at time.Time) (checks.DailyCheck, error) {
	q, ok := markQueries[p]
	if !ok {
		return checks.DailyCheck{}, fmt.Errorf("unknown period %q", p)
	}

	c, err := scanCheck(r.db.QueryRowContext(ctx, q, userID, unitID, day, at))
	if errors.Is(err, sql.ErrNoRows) {
		// conflito sem update: turno já estava marcado
		cur, gerr := r.Get(ctx, userID, unitID, day)
		if gerr != nil {
			return checks.DailyCheck{}, gerr
		}
		return cur, checks.ErrAlreadyMarked
	}
	return c, err
}

func (r *ChecksRepo) Get(ctx context.Context, userID, unitID, day string) (checks.DailyCheck, error) {
	c, err := scanCheck(r.db.QueryRowContext(ctx, `
		SELECT `+checkColumns+` FROM checagens_diarias
		WHERE user_id = $1 AND posto_id = $2 AND dia = $3::text::date
	`, userID, unitID, day))
	if errors.Is(err, sql.ErrNoRows) {
		return checks.DailyCheck{}, checks.ErrNotFound
	}
	return c, err
}

func (r *ChecksRepo) ListByDay(ctx context.Context, day string) ([]checks.DailyCheck, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+checkColumns+` FROM checagens_diarias WHERE dia = $1::text::date
	`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]checks.DailyCheck, 0)
	for rows.Next() {
		c, err := scanCheck(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ChecksRepo) DeleteByUnit(ctx context.Context, unitID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM checagens_diarias WHERE posto_id = $1`, unitID)
	return err
}

func (r *ChecksRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM checagens_diarias WHERE user_id = $1`, userID)
	return err
}

func scanCheck(s scanner) (checks.DailyCheck, error) {
	var c checks.DailyCheck
	var morningAt, afternoonAt sql.NullTime
	if err := s.Scan(
		&c.UserID,
		&c.UnitID,
		&c.Day,
		&c.Morning,
		&c.Afternoon,
		&morningAt,
		&afternoonAt,
	); err != nil {
		return checks.DailyCheck{}, err
	}
	c.MorningAt = nullTimePtr(morningAt)
	c.AfternoonAt = nullTimePtr(afternoonAt)
	return c, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
