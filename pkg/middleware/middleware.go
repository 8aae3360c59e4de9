package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "session_id"
	HeaderUserID      = "X-User-ID"

	ContextKeySessionID = "session_id"
)

// 세션 ID -> 유저 ID 조회 (redis)
type SessionResolver interface {
	GetUserBySessionID(ctx context.Context, sessionID string) (int, error)
}

func SessionMiddleware(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// 쿠키에서 세션 ID 추출
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized: No session ID provided"})
			}
			sessionID := cookie.Value

			// Redis에서 세션 ID로 사용자 정보 조회
			userID, err := resolver.GetUserBySessionID(c.Request().Context(), sessionID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized: Invalid session ID"})
			}

			// 사용자 ID를 헤더에, 세션 ID를 컨텍스트에 저장
			c.Request().Header.Set(HeaderUserID, strconv.Itoa(userID))
			c.Set(ContextKeySessionID, sessionID)

			return next(c)
		}
	}
}
