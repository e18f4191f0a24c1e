package units

import "time"

// Status de funcionamento exibido no portal público.
// @Enum aberto, fechado
type Status string

const (
	StatusOpen   Status = "aberto"
	StatusClosed Status = "fechado"
)

func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusClosed
}

// Unit é uma Unidade Básica de Saúde (tabela postos).
type Unit struct {
	ID string

	Name     string
	Locality string
	Hours    string // horário de funcionamento, texto livre
	Contact  string // opcional

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
