package service

import (
	"fmt"
	"time"

	"anoa.com/edusphere/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = 12 * time.Hour

// Claims identifies the caller by email; Subject carries the same value.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type TokenService interface {
	Issue(email string) (token string, expiresAt time.Time, err error)
	Verify(token string) (*Claims, error)
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) TokenService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &tokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *tokenService) Issue(email string) (string, time.Time, error) {
	if email == "" {
		return "", time.Time{}, apperror.ErrInvalidInput
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

func (s *tokenService) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperror.ErrUnauthorized
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, apperror.ErrUnauthorized
	}

	if claims.Email == "" {
		claims.Email = claims.Subject
	}
	if claims.Email == "" {
		return nil, apperror.ErrUnauthorized
	}

	return claims, nil
}
