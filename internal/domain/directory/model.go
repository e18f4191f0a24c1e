package directory

import (
	"time"

	"ubs-medicacoes/internal/domain/units"
)

// NoResponsible é o texto exibido quando a UBS não tem responsável.
const NoResponsible = "Não definido"

// DateLayout é a data curta exibida no portal (dd/mm/aaaa).
const DateLayout = "02/01/2006"

// Card é a visão pública de uma UBS.
type Card struct {
	Unit units.Unit

	ResponsibleID   string
	ResponsibleName string

	PDFURL       string
	DownloadName string
	UpdatedAt    *time.Time // data do último PDF

	Morning   bool
	Afternoon bool
}

func (c Card) HasPDF() bool {
	return c.PDFURL != ""
}

func (c Card) CheckedToday() bool {
	return c.Morning && c.Afternoon
}
