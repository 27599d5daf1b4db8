package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agniro/entities"
	"agniro/pkg/middleware"
	"agniro/pkg/session"
	kv "agniro/pkg/storage/repositoryImp"
)

const clientID = "5f0c8a8e-6a55-4d8f-9a47-2b1f3c4d5e6f"

func whoami(t *testing.T, reg *session.Registry) map[string]any {
	t.Helper()
	e := echo.New()
	e.Use(middleware.Client(false))
	e.GET("/whoami", NewAuthController(reg).WhoAmI)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: middleware.ClientCookie, Value: clientID})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWhoAmI(t *testing.T) {
	body := whoami(t, session.NewRegistry(kv.NewMemory(), zap.NewNop(), nil))
	assert.Equal(t, clientID, body["clientId"])
	assert.EqualValues(t, 40, body["crops"])
	assert.EqualValues(t, 0, body["archived"])
	assert.EqualValues(t, 0, body["videos"])
}

func TestWhoAmICountsSavedArticlesOnly(t *testing.T) {
	reg := session.NewRegistry(kv.NewMemory(), zap.NewNop(), nil)
	articles := reg.For(clientID).Articles
	a := articles.AddLatest(entities.Article{Title: "Mulching", Date: "2024-05-01"})
	_, err := articles.SaveToArchive(a)
	require.NoError(t, err)

	body := whoami(t, reg)
	assert.EqualValues(t, 1, body["archived"])
}
