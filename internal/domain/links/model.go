package links

import "time"

// Link liga um responsável a uma UBS (tabela usuario_posto).
// Cada UBS tem no máximo um Link; um usuário pode ter vários.
type Link struct {
	UserID    string
	UnitID    string
	CreatedAt time.Time
}
