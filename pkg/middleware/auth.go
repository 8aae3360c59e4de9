package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// X-User-ID 헤더에서 유저 ID 가져오기
func CurrentUserID(c echo.Context) (int, error) {
	userIDStr := c.Request().Header.Get(HeaderUserID)
	if userIDStr == "" {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "User ID is required")
	}

	userID, err := strconv.Atoi(userIDStr)
	if err != nil || userID <= 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "Invalid User ID")
	}
	return userID, nil
}

// SessionMiddleware가 저장한 세션 ID
func CurrentSessionID(c echo.Context) (string, error) {
	sessionID, ok := c.Get(ContextKeySessionID).(string)
	if !ok || sessionID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Session is required")
	}
	return sessionID, nil
}
