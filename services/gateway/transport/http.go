package transport

import (
	"net/http"

	"redddate/pkg/middleware"
	"redddate/services/gateway/handler"

	"github.com/labstack/echo/v4"
)

// 프록시 대상 서비스의 경로 요소
const (
	PathSearch = "search"
	PathUser   = "user"
)

func NewRouter(gatewayHandler *handler.GatewayHandler, sessions middleware.SessionResolver) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// search-service는 세션을 직접 확인한다
	e.Any("/"+PathSearch+"/*", gatewayHandler.ProxyService)

	// user-service는 X-User-ID 헤더만 본다
	user := e.Group("/"+PathUser, middleware.SessionMiddleware(sessions))
	user.Any("/*", gatewayHandler.ProxyService)

	return e
}
