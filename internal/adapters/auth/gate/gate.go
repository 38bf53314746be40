package gate

import (
	"context"
	"errors"
	"strings"
	"time"

	"tucing-suites-calendar/internal/platform/clock"
	"tucing-suites-calendar/internal/ports/auth"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	// Subject es el único usuario del gate: el personal del hotel.
	Subject = "staff"

	DefaultTokenTTL = 12 * time.Hour
)

var (
	ErrNotConfigured = errors.New("auth gate not configured")
	ErrWrongPassword = errors.New("wrong password")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrInvalidToken  = errors.New("invalid or expired token")
)

type Config struct {
	PasswordHash string
	Secret       string
	TTL          time.Duration
	Clock        clock.Clock
}

// Gate cambia la contraseña compartida por un token HS256 firmado.
type Gate struct {
	hash   string
	secret []byte
	ttl    time.Duration
	clk    clock.Clock
}

func New(cfg Config) (*Gate, error) {
	if strings.TrimSpace(cfg.PasswordHash) == "" || cfg.Secret == "" {
		return nil, ErrNotConfigured
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Gate{
		hash:   cfg.PasswordHash,
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		clk:    clk,
	}, nil
}

type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Login valida la contraseña y emite un token con sub=staff.
func (g *Gate) Login(password string) (Token, error) {
	if !checkPassword(password, g.hash) {
		return Token{}, ErrWrongPassword
	}

	now := g.clk.Now()
	exp := now.Add(g.ttl)
	claims := jwtlib.RegisteredClaims{
		Subject:   Subject,
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(exp),
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, ExpiresAt: exp.Truncate(time.Second)}, nil
}

// Verify implementa auth.AuthVerifier.
func (g *Gate) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := jwtlib.ParseWithClaims(token, &jwtlib.RegisteredClaims{}, func(t *jwtlib.Token) (any, error) {
		return g.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(g.clk.Now),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	rc, ok := parsed.Claims.(*jwtlib.RegisteredClaims)
	if !ok || rc.Subject != Subject {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{UserID: rc.Subject, ExpiresAt: rc.ExpiresAt.Time}, nil
}
