package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/duccv/weather-tracker/internal/apperror"
	"github.com/duccv/weather-tracker/internal/constant"
	"github.com/duccv/weather-tracker/internal/model"
	"github.com/duccv/weather-tracker/internal/security"
)

// TokenVerifier returns the subject of a valid token.
type TokenVerifier interface {
	ValidateToken(token string) (string, error)
}

// AuthState is the outcome of the gate for one request.
type AuthState int

const (
	AuthUnchecked AuthState = iota
	AuthSkipped
	AuthRejected
	AuthAuthenticated
)

func (s AuthState) String() string {
	switch s {
	case AuthSkipped:
		return "SKIPPED"
	case AuthRejected:
		return "REJECTED"
	case AuthAuthenticated:
		return "AUTHENTICATED"
	default:
		return "UNCHECKED"
	}
}

// JWTAuthMiddleware is the authentication gate in front of every route.
type JWTAuthMiddleware struct {
	verifier   TokenVerifier
	translator *apperror.Translator
	config     *MiddlewareConfig
}

func NewJWTAuthMiddleware(
	verifier TokenVerifier,
	translator *apperror.Translator,
	config *MiddlewareConfig,
) *JWTAuthMiddleware {
	if config == nil {
		config = DefaultMiddlewareConfig()
	}
	return &JWTAuthMiddleware{
		verifier:   verifier,
		translator: translator,
		config:     config,
	}
}

// Authenticate lets allow-listed paths through, rejects requests without a
// valid bearer token with 401, and attaches the Identity otherwise.
func (m *JWTAuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		state, identity, err := m.evaluate(c)

		switch state {
		case AuthSkipped:
			c.Next()
		case AuthRejected:
			m.handleAuthError(c, err)
		case AuthAuthenticated:
			c.Set(constant.GinIdentityKey, identity)
			c.Request = c.Request.WithContext(security.WithIdentity(c.Request.Context(), identity))

			zap.L().Debug("User authenticated successfully",
				zap.String("username", identity.Subject),
				zap.String("path", c.Request.URL.Path))
			c.Next()
		}
	}
}

func (m *JWTAuthMiddleware) evaluate(c *gin.Context) (AuthState, *model.Identity, error) {
	if m.shouldSkipAuth(c.Request.URL.Path) {
		return AuthSkipped, nil, nil
	}

	token := extractToken(c)
	if token == "" {
		return AuthRejected, nil, apperror.InvalidToken(constant.MsgMissingToken)
	}

	subject, err := m.verifier.ValidateToken(token)
	if err != nil {
		return AuthRejected, nil, apperror.InvalidToken(constant.MsgInvalidToken)
	}

	return AuthAuthenticated, &model.Identity{
		Subject:       subject,
		Authenticated: true,
		Roles:         []string{constant.RoleUser},
	}, nil
}

// extractToken returns the token of a "Bearer <token>" header, or "".
func extractToken(c *gin.Context) string {
	token, ok := strings.CutPrefix(c.GetHeader(constant.HeaderAuthorization), constant.BearerPrefix)
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func (m *JWTAuthMiddleware) shouldSkipAuth(path string) bool {
	for _, p := range m.config.PublicPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range m.config.PublicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (m *JWTAuthMiddleware) handleAuthError(c *gin.Context, err error) {
	zap.L().Warn("Authentication failed",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("ip", getClientIP(c)),
		zap.Error(err))

	m.translator.Abort(c, err)
}

// IdentityFrom returns the identity set by Authenticate, or nil.
func IdentityFrom(c *gin.Context) *model.Identity {
	v, ok := c.Get(constant.GinIdentityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*model.Identity)
	return identity
}
