package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/afriride/travel-booking/internal/utils"
)

// LookupEmailKey is the echo context key holding the email a valid lookup
// token was issued for.
const LookupEmailKey = "lookup_email"

// LookupAuth checks the bearer lookup token on reservation queries.  When
// required is false a missing token is allowed, but a presented one must
// still be valid.  Handlers compare LookupEmailKey with the queried email.
func LookupAuth(secret string, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				if required {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
				}
				return next(c)
			}
			if secret == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "lookup tokens are not enabled"})
			}
			email, err := utils.ParseLookupToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(LookupEmailKey, email)
			return next(c)
		}
	}
}
