package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

const HeaderAdminToken = "X-Admin-Token"

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// X-Admin-Token が ADMIN_TOKEN と一致するかを確認します。
// token が空なら /admin は常に 403。
func AdminTokenGuard(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token == "" {
				return c.JSON(http.StatusForbidden, errorJSON("admin disabled"))
			}

			got := c.Request().Header.Get(HeaderAdminToken)
			if got == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return c.JSON(http.StatusForbidden, errorJSON("admin only"))
			}

			return next(c)
		}
	}
}
