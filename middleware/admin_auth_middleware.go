package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	appErrors "plugin-browser/utils/errors"
)

const adminSubject = "cache-admin"

var (
	errMissingToken  = errors.New("missing admin token")
	errInvalidToken  = errors.New("invalid admin token")
	errInvalidIssuer = errors.New("invalid issuer")
)

// AdminClaims are the claims carried by a cache admin token.
type AdminClaims struct {
	jwt.RegisteredClaims
}

// AdminAuthMiddleware guards the cache admin routes with an HS256 bearer token.
type AdminAuthMiddleware struct {
	logger *slog.Logger
	secret []byte
	issuer string
}

func NewAdminAuthMiddleware(logger *slog.Logger, secret, issuer string) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{
		logger: logger,
		secret: []byte(secret),
		issuer: issuer,
	}
}

// RequireAdmin rejects requests without a valid token. With no secret
// configured every request passes.
func (m *AdminAuthMiddleware) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(m.secret) == 0 {
				return next(c)
			}

			if err := m.validate(c.Request().Header.Get(echo.HeaderAuthorization)); err != nil {
				if m.logger != nil {
					m.logger.WarnContext(c.Request().Context(), "admin token rejected",
						"path", c.Request().URL.Path,
						"error", err,
					)
				}
				appErr := appErrors.NewUnauthorizedError("middleware", "AdminAuthMiddleware", "RequireAdmin", err)
				return c.JSON(appErr.HTTPStatusCode(), appErr.ToHTTPResponse())
			}

			return next(c)
		}
	}
}

func (m *AdminAuthMiddleware) validate(header string) error {
	tokenStr, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(tokenStr) == "" {
		return errMissingToken
	}

	parsed, err := jwt.ParseWithClaims(strings.TrimSpace(tokenStr), &AdminClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return fmt.Errorf("%w: %v", errInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*AdminClaims)
	if !ok {
		return errInvalidToken
	}
	if m.issuer != "" && claims.Issuer != m.issuer {
		return errInvalidIssuer
	}
	return nil
}

// IssueAdminToken signs a token accepted by RequireAdmin for the given
// secret and issuer.
func IssueAdminToken(secret, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("admin token secret is empty")
	}
	now := time.Now()
	claims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   adminSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
