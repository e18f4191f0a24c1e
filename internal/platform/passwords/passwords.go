package passwords

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmpty = errors.New("password is empty")

// Hash gera o hash bcrypt de uma senha.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmpty
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// IsHash diz se o valor armazenado já é um hash bcrypt.
func IsHash(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}

// Verify compara a senha com o valor armazenado.
// Contas antigas guardavam a senha em texto puro; nesse caso needsRehash volta true
// quando a senha confere, para o chamador gravar o hash.
func Verify(stored, plain string) (ok bool, needsRehash bool) {
	if stored == "" || plain == "" {
		return false, false
	}
	if IsHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil, false
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1 {
		return true, true
	}
	return false, false
}
