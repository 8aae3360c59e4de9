package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"redddate/pkg/dto"
	"redddate/pkg/helper"
	"redddate/pkg/middleware"
	"redddate/pkg/relation"
	"redddate/pkg/types/commontype"
	"redddate/services/search/service"

	"github.com/labstack/echo/v4"
)

type SearchHandler struct {
	resultsService *service.ResultsService
	flagService    *service.FlagService
}

func NewSearchHandler(resultsService *service.ResultsService, flagService *service.FlagService) *SearchHandler {
	return &SearchHandler{
		resultsService: resultsService,
		flagService:    flagService,
	}
}

// 서비스 에러 -> HTTP 에러
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrReportReasonRequired),
		errors.Is(err, service.ErrInvalidAction),
		errors.Is(err, service.ErrInvalidOrder),
		errors.Is(err, relation.ErrInvalidKind),
		errors.Is(err, relation.ErrSelfFlag):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	log.Printf("❌ Search request failed: %v", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}

func currentUser(c echo.Context) (int, string, error) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return 0, "", err
	}
	sessionID, err := middleware.CurrentSessionID(c)
	if err != nil {
		return 0, "", err
	}
	return userID, sessionID, nil
}

// 검색 결과 페이지 조회
func (h *SearchHandler) GetResults(c echo.Context) error {
	userID, sessionID, err := currentUser(c)
	if err != nil {
		return err
	}

	page := 1
	if p := c.QueryParam("page"); p != "" {
		page = helper.ForceInt(p, 1, 1<<20)
	}

	result, err := h.resultsService.Page(c.Request().Context(), sessionID, userID, page)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// 검색 설정 변경 (JSON 또는 form)
func (h *SearchHandler) UpdateSettings(c echo.Context) error {
	userID, sessionID, err := currentUser(c)
	if err != nil {
		return err
	}

	var settings dto.SearchSettings
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		if err := c.Bind(&settings); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
		}
	} else {
		settings, err = settingsFromForm(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
		}
	}

	result, err := h.resultsService.UpdateSettings(c.Request().Context(), sessionID, userID, settings)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// form 필드 이름: f_sex, f_distance, f_minage, f_maxage, f_hide_no_pic,
// f_has_verified_email, f_ignore_sr_li, f_exclude_sr_li, order_by, sr-fav
func settingsFromForm(c echo.Context) (dto.SearchSettings, error) {
	var s dto.SearchSettings

	form, err := c.FormParams()
	if err != nil {
		return s, err
	}

	intField := func(key string, min, max int) *int {
		if _, ok := form[key]; !ok {
			return nil
		}
		v := helper.ForceInt(form.Get(key), min, max)
		return &v
	}
	boolField := func(key string) *bool {
		if _, ok := form[key]; !ok {
			return nil
		}
		v := helper.ForceInt(form.Get(key), 0, 1) == 1
		return &v
	}
	strField := func(key string) *string {
		if _, ok := form[key]; !ok {
			return nil
		}
		v := form.Get(key)
		return &v
	}

	s.Sex = intField("f_sex", commontype.SexMin, commontype.SexMax)
	s.Distance = intField("f_distance", 0, commontype.MaxDistanceKm)
	s.MinAge = intField("f_minage", commontype.MinAgeFloor, commontype.MinAgeCeil)
	s.MaxAge = intField("f_maxage", commontype.MaxAgeFloor, commontype.MaxAgeCeil)
	s.HideNoPic = boolField("f_hide_no_pic")
	s.HasVerifiedEmail = boolField("f_has_verified_email")
	s.IgnoreGroups = strField("f_ignore_sr_li")
	s.ExcludeGroups = strField("f_exclude_sr_li")
	s.Order = strField("order_by")
	s.Favorites = form["sr-fav"]
	return s, nil
}

// 프로필 상세
func (h *SearchHandler) GetProfile(c echo.Context) error {
	userID, sessionID, err := currentUser(c)
	if err != nil {
		return err
	}

	view, err := h.resultsService.ViewProfile(c.Request().Context(), sessionID, userID, c.Param("username"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// 플래그 설정/삭제: /flags/:action/:kind/:username
func (h *SearchHandler) ApplyFlag(c echo.Context) error {
	userID, sessionID, err := currentUser(c)
	if err != nil {
		return err
	}

	var report *dto.ReportRequest
	if c.Param("kind") == commontype.FlagNames[commontype.FlagReport] {
		report = &dto.ReportRequest{}
		if err := c.Bind(report); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid report payload")
		}
	}

	result, err := h.flagService.Apply(
		c.Request().Context(),
		sessionID,
		userID,
		c.Param("action"),
		c.Param("kind"),
		c.Param("username"),
		report,
	)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// 보낸 플래그 일괄 삭제: ?kinds=like,nope (없으면 전부)
func (h *SearchHandler) DeleteSentFlags(c echo.Context) error {
	userID, sessionID, err := currentUser(c)
	if err != nil {
		return err
	}

	var kinds []string
	if raw := c.QueryParam("kinds"); raw != "" {
		kinds = strings.Split(raw, ",")
	}

	n, err := h.flagService.DeleteSent(c.Request().Context(), sessionID, userID, kinds)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"deleted": n})
}

func (h *SearchHandler) listFlags(listing string) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := middleware.CurrentUserID(c)
		if err != nil {
			return err
		}

		items, err := h.flagService.List(c.Request().Context(), userID, listing)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, items)
	}
}

func (h *SearchHandler) ListMatches(c echo.Context) error {
	return h.listFlags(service.ListingMatches)(c)
}

func (h *SearchHandler) ListLikesSent(c echo.Context) error {
	return h.listFlags(service.ListingLikesSent)(c)
}

func (h *SearchHandler) ListLikesReceived(c echo.Context) error {
	return h.listFlags(service.ListingLikesReceived)(c)
}

func (h *SearchHandler) ListNopesSent(c echo.Context) error {
	return h.listFlags(service.ListingNopesSent)(c)
}
