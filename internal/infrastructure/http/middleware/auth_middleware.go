package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hospitalvoice/booking-agent/pkg/jwt"
)

const (
	// HospitalIDKey is the echo context key for the authenticated hospital ID
	HospitalIDKey = "hospital_id"
	// HospitalEmailKey is the echo context key for the authenticated email
	HospitalEmailKey = "hospital_email"
)

// EchoAuth returns an Echo middleware that validates the bearer token and
// sets "hospital_id" (uuid.UUID) and "hospital_email" into the Echo context
func EchoAuth(jwtManager *jwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			claims, err := jwtManager.ValidateAccessToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(HospitalIDKey, claims.HospitalID)
			c.Set(HospitalEmailKey, claims.Email)
			return next(c)
		}
	}
}

// HospitalIDFromContext retrieves the authenticated hospital ID
func HospitalIDFromContext(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(HospitalIDKey).(uuid.UUID)
	return id, ok
}

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}
