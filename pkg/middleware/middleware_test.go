package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver map[string]int

func (f fakeResolver) GetUserBySessionID(_ context.Context, sessionID string) (int, error) {
	userID, ok := f[sessionID]
	if !ok {
		return 0, errors.New("session not found")
	}
	return userID, nil
}

func newTestServer() *echo.Echo {
	e := echo.New()
	e.Use(SessionMiddleware(fakeResolver{"good": 7}))
	e.GET("/whoami", func(c echo.Context) error {
		userID, err := CurrentUserID(c)
		if err != nil {
			return err
		}
		sessionID, err := CurrentSessionID(c)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"user_id": userID, "session_id": sessionID})
	})
	return e
}

func TestSessionMiddleware(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":7,"session_id":"good"}`, rec.Body.String())
}

func TestSessionMiddleware_Rejects(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "bad"})
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCurrentUserID(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "abc")
	_, err := CurrentUserID(e.NewContext(req, httptest.NewRecorder()))
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)

	req.Header.Set(HeaderUserID, "12")
	userID, err := CurrentUserID(e.NewContext(req, httptest.NewRecorder()))
	require.NoError(t, err)
	assert.Equal(t, 12, userID)
}
