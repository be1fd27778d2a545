package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

const issuer = "chama"

type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	secret []byte
	ttl    time.Duration
	hashes map[Role]string
	now    func() time.Time
}

type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
	// SecretHashes maps each role to the bcrypt hash of its secret.
	SecretHashes map[Role]string
}

func NewService(cfg Config) *Service {
	return &Service{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		hashes: cfg.SecretHashes,
		now:    time.Now,
	}
}

// Token is an issued bearer token.
type Token struct {
	Value     string
	Role      Role
	ExpiresAt time.Time
}

// Authenticate checks secret against the role's configured hash and issues a
// signed token for the role.
func (s *Service) Authenticate(role Role, secret string) (*Token, error) {
	hash, ok := s.hashes[role]
	if !ok || hash == "" {
		return nil, ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		return nil, ErrUnauthorized
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   string(role),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	return &Token{Value: signed, Role: role, ExpiresAt: expiresAt}, nil
}

// Verify parses a bearer token and returns its claims.
func (s *Service) Verify(token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthorized
	}

	if _, ok := ParseRole(string(claims.Role)); !ok {
		return nil, ErrUnauthorized
	}

	return claims, nil
}

// HashSecret returns the bcrypt hash to configure for a role secret.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing secret: %w", err)
	}

	return string(hash), nil
}
