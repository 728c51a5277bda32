package middleware

import (
	"errors"
	"fmt"
	"strings"

	"training-quiz/internal/domain"
	"training-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	EmployeeIDKey       = "employeeID" // Key for storing the authenticated employee in fiber.Ctx locals
)

// EmployeeClaims are the claims the portal's identity provider puts in access tokens.
type EmployeeClaims struct {
	EmployeeID string `json:"employee_id"`
	jwt.RegisteredClaims
}

// TokenVerifier checks HS256 bearer tokens signed with a shared secret.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify parses tokenString and returns its claims when the signature and expiry are valid.
func (v *TokenVerifier) Verify(tokenString string) (*EmployeeClaims, error) {
	claims := &EmployeeClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token has expired")
		}
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if strings.TrimSpace(claims.EmployeeID) == "" {
		return nil, errors.New("token has no employee_id claim")
	}
	return claims, nil
}

// Protected is a middleware function that protects routes by requiring a valid JWT.
// It sets the authenticated employee ID in the context.
func Protected(verifier *TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return domain.NewUnauthorizedError("Authorization header is missing")
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return domain.NewUnauthorizedError("Authorization scheme is not Bearer")
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return domain.NewUnauthorizedError("Token is empty")
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			logger.Get().Debug("JWT validation failed", zap.Error(err), zap.String("path", c.Path()))
			return domain.NewUnauthorizedError(err.Error())
		}

		c.Locals(EmployeeIDKey, claims.EmployeeID)
		return c.Next()
	}
}

// AuthorizeEmployee fails with FORBIDDEN when the request is authenticated as a different
// employee than employeeID. Unauthenticated requests (auth disabled) pass.
func AuthorizeEmployee(c *fiber.Ctx, employeeID string) error {
	authenticated, ok := c.Locals(EmployeeIDKey).(string)
	if !ok || authenticated == "" {
		return nil
	}
	if authenticated != employeeID {
		return domain.NewForbiddenError("token does not belong to the requested employee").
			WithContext("employee_id", employeeID)
	}
	return nil
}
