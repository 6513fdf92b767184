package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/clinic-review-platform/internal/repository"
	"github.com/iliyamo/clinic-review-platform/internal/service"
)

// requestTimeout caps how long any single handler spends in the
// service layer, including remote gateway round trips.
const requestTimeout = 10 * time.Second

// getUserID extracts the authenticated user's id placed in context by
// the JWT middleware. Empty means the request is unauthenticated.
func getUserID(c echo.Context) string {
	if s, ok := c.Get("user_id").(string); ok {
		return s
	}
	return ""
}

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// writeServiceError maps service and repository errors to HTTP
// responses. Validation messages are user-facing and pass through
// verbatim; everything else gets a stable machine-readable error.
func writeServiceError(c echo.Context, err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Message})
	case errors.Is(err, service.ErrRequiresAuth):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "メールアドレスまたはパスワードが正しくありません"})
	case errors.Is(err, service.ErrEmailUnconfirmed):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "メールアドレスの確認が完了していません"})
	case errors.Is(err, repository.ErrEmailExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "このメールアドレスは既に登録されています"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	case errors.Is(err, service.ErrRemoteRejected):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "口コミの送信に失敗しました。時間をおいて再度お試しください"})
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusGatewayTimeout, echo.Map{"error": "timeout"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
