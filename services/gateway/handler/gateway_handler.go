package handler

import (
	"io"
	"log"
	"net/http"

	"redddate/pkg/helper"

	"github.com/labstack/echo/v4"
)

type GatewayHandler struct {
	// 첫 번째 경로 요소 -> 서비스 base URL
	upstreams map[string]string
	client    *http.Client
}

func NewGatewayHandler(upstreams map[string]string) *GatewayHandler {
	return &GatewayHandler{
		upstreams: upstreams,
		client:    &http.Client{},
	}
}

// ProxyService - API를 프록시해주는 역할
func (h *GatewayHandler) ProxyService(c echo.Context) error {
	log.Printf("Proxy Request URL: %s", c.Request().URL)

	// 요청 경로에서 첫 번째 경로 요소를 추출
	firstPath, trimmedPath := helper.ExtractFirstPath(c.Request().URL.Path)

	// 첫 번째 경로 요소에 따라 targetURL 설정
	baseURL, ok := h.upstreams[firstPath]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Unknown service"})
	}
	targetURL := baseURL + trimmedPath

	// 쿼리 스트링 추가
	if c.QueryString() != "" {
		targetURL += "?" + c.QueryString()
	}

	// 새로운 요청 생성 (전달받은 HTTP 메서드 유지)
	req, err := http.NewRequestWithContext(c.Request().Context(), c.Request().Method, targetURL, c.Request().Body)
	if err != nil {
		log.Printf("Failed to create request: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create request"})
	}

	// 원본 요청 헤더 복사
	for key, values := range c.Request().Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := h.client.Do(req)
	if err != nil {
		log.Printf("Failed to send request: %v", err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Failed to send request"})
	}
	defer resp.Body.Close()

	// 응답 헤더 복사
	for key, values := range resp.Header {
		for _, value := range values {
			c.Response().Header().Add(key, value)
		}
	}

	// 상태 코드 설정
	c.Response().WriteHeader(resp.StatusCode)

	// 응답 본문을 클라이언트에게 전달
	if _, err := io.Copy(c.Response().Writer, resp.Body); err != nil {
		log.Printf("Failed to copy response body: %v", err)
	}
	return nil
}
