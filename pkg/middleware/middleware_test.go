package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func serve(t *testing.T, mw []echo.MiddlewareFunc, req *http.Request) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	var seen string
	e.Use(mw...)
	e.GET("/ping", func(c echo.Context) error {
		seen = ClientID(c)
		return c.String(http.StatusOK, "pong")
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestClientIssuesCookie(t *testing.T) {
	rec, id := serve(t, []echo.MiddlewareFunc{Client(false)}, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, ClientCookie, cookies[0].Name)
	assert.Equal(t, id, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestClientReusesCookieAndHeader(t *testing.T) {
	known := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.AddCookie(&http.Cookie{Name: ClientCookie, Value: known})
	_, id := serve(t, []echo.MiddlewareFunc{Client(false)}, req)
	assert.Equal(t, known, id)

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(ClientHeader, known)
	_, id = serve(t, []echo.MiddlewareFunc{Client(false)}, req)
	assert.Equal(t, known, id)

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.AddCookie(&http.Cookie{Name: ClientCookie, Value: "not-a-uuid"})
	_, id = serve(t, []echo.MiddlewareFunc{Client(false)}, req)
	assert.NotEqual(t, "not-a-uuid", id)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	known := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(ClientHeader, known)
	serve(t, []echo.MiddlewareFunc{RequestLogger(zap.New(core)), Client(false)}, req)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/ping", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.Equal(t, known, fields["client"])
}
