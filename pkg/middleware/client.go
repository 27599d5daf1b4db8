package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	ClientCookie = "AGNIRO_CLIENT"
	ClientHeader = "X-Client-Id"
	clientKey    = "clientID"
)

// Client identifies the caller by cookie, or by header for non-browser
// callers, and issues a fresh id when neither carries a valid one.
func Client(secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(ClientCookie); err == nil && validID(ck.Value) {
				id = ck.Value
			} else if h := c.Request().Header.Get(ClientHeader); validID(h) {
				id = h
			}
			if id == "" {
				id = uuid.NewString()
			}
			c.SetCookie(&http.Cookie{
				Name:     ClientCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   365 * 24 * 60 * 60,
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
			c.Set(clientKey, id)
			return next(c)
		}
	}
}

// ClientID returns the id set by Client, or "" outside it.
func ClientID(c echo.Context) string {
	id, _ := c.Get(clientKey).(string)
	return id
}

func validID(s string) bool {
	_, err := uuid.Parse(s)
	return s != "" && err == nil
}
