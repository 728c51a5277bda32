package middleware_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"training-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, employeeID string, ttl time.Duration) string {
	t.Helper()
	claims := middleware.EmployeeClaims{
		EmployeeID: employeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newProtectedApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Get("/employees/:employeeId",
		middleware.Protected(middleware.NewTokenVerifier(testSecret)),
		func(c *fiber.Ctx) error {
			if err := middleware.AuthorizeEmployee(c, c.Params("employeeId")); err != nil {
				return err
			}
			return c.SendString(c.Locals(middleware.EmployeeIDKey).(string))
		})
	return app
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		authHeader string
		wantStatus int
		wantCode   string
	}{
		{"missing header", "/employees/E1", "", fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"wrong scheme", "/employees/E1", "Basic abc", fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"garbage token", "/employees/E1", "Bearer not-a-jwt", fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"wrong secret", "/employees/E1", "Bearer " + signToken(t, "other", "E1", time.Hour), fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"expired", "/employees/E1", "Bearer " + signToken(t, testSecret, "E1", -time.Hour), fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"other employee", "/employees/E2", "Bearer " + signToken(t, testSecret, "E1", time.Hour), fiber.StatusForbidden, "FORBIDDEN"},
		{"valid", "/employees/E1", "Bearer " + signToken(t, testSecret, "E1", time.Hour), fiber.StatusOK, ""},
	}

	app := newProtectedApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set(middleware.AuthorizationHeader, tt.authHeader)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantCode != "" {
				var body middleware.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.wantCode, body.Code)
			}
		})
	}
}

func TestTokenVerifier_RejectsMissingEmployeeClaim(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = middleware.NewTokenVerifier(testSecret).Verify(token)
	assert.Error(t, err)
}

func TestTokenVerifier_RejectsNoneAlgorithm(t *testing.T) {
	claims := middleware.EmployeeClaims{EmployeeID: "E1"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = middleware.NewTokenVerifier(testSecret).Verify(token)
	assert.Error(t, err)
}
