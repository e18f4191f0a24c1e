package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ubs-medicacoes/internal/domain/medlists"
)

type MedListsRepo struct {
	db *sql.DB
}

func NewMedListsRepo(db *sql.DB) *MedListsRepo {
	return &MedListsRepo{db: db}
}

const medListColumns = `id, posto_id, url, caminho, nome_arquivo, tamanho, enviado_por, data_upload`

// Replace: posto_id é UNIQUE, então o upsert troca a linha da UBS.
func (r *MedListsRepo) Replace(ctx context.Context, m medlists.MedicationList) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO arquivos_pdf (`+medListColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (posto_id) DO UPDATE SET
			id = EXCLUDED.id,
			url = EXCLUDED.url,
			caminho = EXCLUDED.caminho,
			nome_arquivo = EXCLUDED.nome_arquivo,
			tamanho = EXCLUDED.tamanho,
			enviado_por = EXCLUDED.enviado_por,
			data_upload = EXCLUDED.data_upload
	`,
		m.ID,
		m.UnitID,
		m.URL,
		m.ObjectPath,
		m.FileName,
		m.SizeBytes,
		m.UploadedBy,
		m.UploadedAt,
	)
	return err
}

func (r *MedListsRepo) GetByUnit(ctx context.Context, unitID string) (medlists.MedicationList, error) {
	m, err := scanMedList(r.db.QueryRowContext(ctx, `
		SELECT `+medListColumns+` FROM arquivos_pdf WHERE posto_id = $1
	`, unitID))
	if errors.Is(err, sql.ErrNoRows) {
		return medlists.MedicationList{}, medlists.ErrNotFound
	}
	return m, err
}

func (r *MedListsRepo) DeleteByUnit(ctx context.Context, unitID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM arquivos_pdf WHERE posto_id = $1`, unitID)
	return err
}

func (r *MedListsRepo) List(ctx context.Context) ([]medlists.MedicationList, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+medListColumns+` FROM arquivos_pdf ORDER BY data_upload DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medlists.MedicationList, 0)
	for rows.Next() {
		m, err := scanMedList(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMedList(s scanner) (medlists.MedicationList, error) {
	var m medlists.MedicationList
	err := s.Scan(
		&m.ID,
		&m.UnitID,
		&m.URL,
		&m.ObjectPath,
		&m.FileName,
		&m.SizeBytes,
		&m.UploadedBy,
		&m.UploadedAt,
	)
	return m, err
}
