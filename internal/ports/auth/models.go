package auth

import (
	"context"
	"time"
)

// Claims es la sesión del staff extraída del token.
type Claims struct {
	UserID    string
	ExpiresAt time.Time
}

func (c Claims) Empty() bool {
	return c.UserID == ""
}

// AuthVerifier valida un token de sesión. Lo implementa el gate; nil en modo dev.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
