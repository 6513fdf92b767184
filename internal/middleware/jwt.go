package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/clinic-review-platform/internal/repository"
	"github.com/iliyamo/clinic-review-platform/internal/utils"
)

// JWTAuth validates the Bearer access token on protected routes and
// stores the subject and role claims under "user_id" and "role" so
// handlers can read them with c.Get. The secret must be the one the
// token was issued with. A signed token alone is not enough: its hash
// must also match the active device session, so a token issued before
// another account logged in stops working the moment it is displaced.
func JWTAuth(secret string, sessions *repository.SessionRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				// Only HS256 tokens are ever issued; anything else is forged.
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			sess, err := sessions.Current(c.Request().Context())
			if err != nil || sess.TokenHash != utils.HashTokenRaw(raw) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session no longer active"})
			}

			if sub, ok := claims["sub"].(string); ok {
				c.Set("user_id", sub)
			}
			if role, ok := claims["role"].(string); ok {
				c.Set("role", role)
			}
			return next(c)
		}
	}
}
