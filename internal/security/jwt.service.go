package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/duccv/weather-tracker/internal/apperror"
	"github.com/duccv/weather-tracker/internal/constant"
	"github.com/duccv/weather-tracker/internal/model"
)

const (
	minSecretLength = 32
	defaultTokenTTL = 10 * time.Hour
)

var ErrWeakSecret = fmt.Errorf("jwt secret must be at least %d bytes", minSecretLength)

// JWTService issues and verifies HS512 access tokens.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type JWTOption func(*JWTService)

// WithClock replaces the clock used both for issuing and for expiry checks.
func WithClock(now func() time.Time) JWTOption {
	return func(s *JWTService) {
		s.now = now
	}
}

func WithTTL(ttl time.Duration) JWTOption {
	return func(s *JWTService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func NewJWTService(secret string, opts ...JWTOption) (*JWTService, error) {
	if len(secret) < minSecretLength {
		return nil, ErrWeakSecret
	}
	s := &JWTService{
		secret: []byte(secret),
		ttl:    defaultTokenTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GenerateToken creates a signed token whose subject is username.
func (s *JWTService) GenerateToken(username string) (string, error) {
	now := s.now()
	claims := model.JWTPayload{
		Type:  constant.TokenType,
		Roles: []string{constant.RoleUser},
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			Issuer:    constant.TokenIssuer,
			Audience:  jwt.ClaimStrings{constant.TokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token signing failed: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies signature, expiry, issuer and audience and returns
// the subject. Every failure is reported as an InvalidToken error.
func (s *JWTService) ValidateToken(tokenString string) (string, error) {
	claims := &model.JWTPayload{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(constant.TokenIssuer),
		jwt.WithAudience(constant.TokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		zap.L().Debug("JWT validation failed", zap.Error(err))
		return "", apperror.InvalidToken(constant.MsgInvalidToken)
	}
	if claims.Subject == "" {
		zap.L().Debug("JWT validation failed", zap.Error(errors.New("missing subject")))
		return "", apperror.InvalidToken(constant.MsgInvalidToken)
	}
	return claims.Subject, nil
}
