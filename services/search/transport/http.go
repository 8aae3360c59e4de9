package transport

import (
	"redddate/pkg/middleware"
	"redddate/services/search/handler"

	"github.com/labstack/echo/v4"
)

func NewRouter(searchHandler *handler.SearchHandler, sessions middleware.SessionResolver) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	g := e.Group("/search", middleware.SessionMiddleware(sessions))

	// 검색 결과
	g.GET("/results", searchHandler.GetResults)
	g.POST("/results", searchHandler.UpdateSettings)

	// 프로필 상세
	g.GET("/users/:username", searchHandler.GetProfile)

	// 플래그
	g.POST("/flags/:action/:kind/:username", searchHandler.ApplyFlag)
	g.DELETE("/flags", searchHandler.DeleteSentFlags)

	g.GET("/matches", searchHandler.ListMatches)
	g.GET("/likes/sent", searchHandler.ListLikesSent)
	g.GET("/likes/received", searchHandler.ListLikesReceived)
	g.GET("/nopes/sent", searchHandler.ListNopesSent)

	return e
}
