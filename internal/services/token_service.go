package services

import (
	"errors"
	"fmt"
	"time"

	"yatube/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

type Claims struct {
	TokenType string `json:"token_type"`
	UserID    uint   `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and checks HS256 signed access and refresh tokens.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *TokenService) Issue(user *models.User) (*TokenPair, error) {
	refresh, err := s.sign(tokenTypeRefresh, user.ID, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	access, err := s.sign(tokenTypeAccess, user.ID, s.accessTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Refresh: refresh, Access: access}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *TokenService) Refresh(refresh string) (string, error) {
	claims, err := s.parse(refresh)
	if err != nil {
		return "", err
	}
	if claims.TokenType != tokenTypeRefresh {
		return "", ErrInvalidToken
	}
	return s.sign(tokenTypeAccess, claims.UserID, s.accessTTL)
}

// Verify accepts any valid token of either type.
func (s *TokenService) Verify(token string) error {
	_, err := s.parse(token)
	return err
}

// ParseAccess returns the user id carried by a valid access token.
func (s *TokenService) ParseAccess(token string) (uint, error) {
	claims, err := s.parse(token)
	if err != nil {
		return 0, err
	}
	if claims.TokenType != tokenTypeAccess {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

func (s *TokenService) sign(tokenType string, userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		TokenType: tokenType,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (s *TokenService) parse(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
