package gate

import (
	"strings"

	"tucing-suites-calendar/internal/platform/errs"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword genera el hash bcrypt de la contraseña del personal.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errs.Wrap(err, "hash password")
	}
	return string(hash), nil
}

// ResolveHash devuelve el hash configurado, o hashea la contraseña en claro si solo viene esa.
func ResolveHash(hash, plain string) (string, error) {
	if h := strings.TrimSpace(hash); h != "" {
		if _, err := bcrypt.Cost([]byte(h)); err != nil {
			return "", errs.Wrap(err, "invalid AUTH_PASSWORD_HASH")
		}
		return h, nil
	}
	if plain == "" {
		return "", ErrNotConfigured
	}
	return HashPassword(plain)
}

func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
