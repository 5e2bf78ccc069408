// Package auth issues and validates session tokens and drives the Google
// OAuth login flow.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/momentum-hq/momentum-api/internal/domain"
)

type Claims struct {
	jwt.RegisteredClaims
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsManager bool   `json:"isManager"`
	IsAdmin   bool   `json:"isAdmin,omitempty"`
	Team      string `json:"team,omitempty"`
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a session token carrying the member's identity and roles.
func (m *TokenManager) Issue(member *domain.TeamMember) (string, error) {
	now := m.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   member.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Email:     member.Email,
		FirstName: member.FirstName,
		LastName:  member.LastName,
		IsManager: member.IsManager,
		Team:      member.Team,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates the token and returns the actor it represents. Any
// signature, expiry or method failure maps to ErrUnauthorized.
func (m *TokenManager) Parse(tokenString string) (*domain.Actor, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	return &domain.Actor{
		UID:       claims.Subject,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		IsManager: claims.IsManager,
		IsAdmin:   claims.IsAdmin,
		Team:      claims.Team,
	}, nil
}
