package checks

import "time"

// Period é o turno da checagem diária.
type Period string

const (
	PeriodMorning   Period = "manha"
	PeriodAfternoon Period = "tarde"
)

func (p Period) Valid() bool {
	return p == PeriodMorning || p == PeriodAfternoon
}

// DayLayout é o formato da coluna dia.
const DayLayout = "2006-01-02"

// DailyCheck registra que o responsável conferiu a lista da UBS naquele dia
// (tabela checagens_diarias). Uma marcação nunca volta a false.
type DailyCheck struct {
	UserID string
	UnitID string
	Day    string // YYYY-MM-DD no fuso configurado

	Morning   bool
	Afternoon bool

	MorningAt   *time.Time
	AfternoonAt *time.Time
}

func (c DailyCheck) Complete() bool {
	return c.Morning && c.Afternoon
}

func (c DailyCheck) Has(p Period) bool {
	switch p {
	case PeriodMorning:
		return c.Morning
	case PeriodAfternoon:
		return c.Afternoon
	}
	return false
}
