package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MarcsonSantos/lu-estilo/pkg/config"
)

var (
	// ErrInvalidToken is returned when a token is malformed, forged,
	// expired, or of the wrong type.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the token has expired. It wraps
	// ErrInvalidToken so callers may treat both uniformly.
	ErrExpiredToken = fmt.Errorf("%w: token has expired", ErrInvalidToken)
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// UserClaims represents the JWT claims for user authentication. The subject
// is the user's email; TokenType discriminates access from refresh tokens.
type UserClaims struct {
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenManager signs and validates HS256 bearer tokens.
type TokenManager struct {
	signingKey []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager creates a TokenManager from JWT configuration.
func NewTokenManager(cfg *config.JWTConfig) *TokenManager {
	return &TokenManager{
		signingKey: []byte(cfg.SigningKey),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}
}

// GenerateAccessToken creates a short-lived access token for the given user.
func (m *TokenManager) GenerateAccessToken(email string) (string, error) {
	return m.generateToken(email, tokenTypeAccess, m.accessTTL)
}

// GenerateRefreshToken creates a long-lived refresh token for the given user.
func (m *TokenManager) GenerateRefreshToken(email string) (string, error) {
	return m.generateToken(email, tokenTypeRefresh, m.refreshTTL)
}

// AccessTokenTTL returns the configured access token lifetime.
func (m *TokenManager) AccessTokenTTL() time.Duration {
	return m.accessTTL
}

func (m *TokenManager) generateToken(email, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := UserClaims{
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.signingKey)
}

// ValidateAccessToken validates an access token and returns its claims.
func (m *TokenManager) ValidateAccessToken(tokenString string) (*UserClaims, error) {
	return m.validateToken(tokenString, tokenTypeAccess)
}

// ValidateRefreshToken validates a refresh token and returns its claims.
func (m *TokenManager) ValidateRefreshToken(tokenString string) (*UserClaims, error) {
	return m.validateToken(tokenString, tokenTypeRefresh)
}

func (m *TokenManager) validateToken(tokenString, wantType string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
