package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type for this endpoint")
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

const (
	issuer          = "filmrental-auth"
	refreshLifetime = 24 * 7 * time.Hour
)

// StaffClaims identifies the staff member acting on a request.
type StaffClaims struct {
	StaffID  uuid.UUID `json:"staff_id"`
	Username string    `json:"username,omitempty"`
	Type     TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateAccessToken(staffID uuid.UUID, username string) (string, error)
	GenerateRefreshToken(staffID uuid.UUID) (string, error)
	ValidateToken(tokenString string) (*StaffClaims, error)
}

type tokenManager struct {
	secret       []byte
	accessExpiry time.Duration
}

func NewTokenManager(secret string, accessExpiry time.Duration) TokenManager {
	if accessExpiry <= 0 {
		accessExpiry = time.Hour
	}
	return &tokenManager{
		secret:       []byte(secret),
		accessExpiry: accessExpiry,
	}
}

func (m *tokenManager) GenerateAccessToken(staffID uuid.UUID, username string) (string, error) {
	return m.sign(StaffClaims{
		StaffID:          staffID,
		Username:         username,
		Type:             TokenTypeAccess,
		RegisteredClaims: registered(staffID, m.accessExpiry, "api-access"),
	})
}

func (m *tokenManager) GenerateRefreshToken(staffID uuid.UUID) (string, error) {
	return m.sign(StaffClaims{
		StaffID:          staffID,
		Type:             TokenTypeRefresh,
		RegisteredClaims: registered(staffID, refreshLifetime, "token-refresh"),
	})
}

func (m *tokenManager) sign(claims StaffClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func registered(staffID uuid.UUID, lifetime time.Duration, audience string) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Subject:   staffID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    issuer,
		Audience:  jwt.ClaimStrings{audience},
		ID:        uuid.NewString(),
	}
}

func (m *tokenManager) ValidateToken(tokenString string) (*StaffClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &StaffClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*StaffClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	// Fall back to the subject when the custom claim is missing
	if claims.StaffID == uuid.Nil {
		id, err := uuid.Parse(claims.Subject)
		if err != nil {
			return nil, ErrInvalidToken
		}
		claims.StaffID = id
	}
	return claims, nil
}
