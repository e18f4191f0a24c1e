package medlists

import "time"

// MedicationList é o PDF de medicações vigente de uma UBS (tabela arquivos_pdf).
// Existe no máximo um por UBS.
type MedicationList struct {
	ID     string
	UnitID string

	URL        string // URL pública do objeto
	ObjectPath string // caminho dentro do bucket: <unitID>/<ms>-<nome>
	FileName   string
	SizeBytes  int64

	UploadedBy string
	UploadedAt time.Time
}
