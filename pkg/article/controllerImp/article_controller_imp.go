package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agniro/entities"
	"agniro/pkg/ai"
	"agniro/pkg/article"
	"agniro/pkg/article/controller"
	"agniro/pkg/article/service"
	"agniro/pkg/middleware"
	"agniro/pkg/session"
)

type ArticleCtrl struct {
	sessions *session.Registry
	svc      service.ArticleService
	log      *zap.Logger
}

func New(sessions *session.Registry, svc service.ArticleService, log *zap.Logger) controller.ArticleController {
	return &ArticleCtrl{sessions: sessions, svc: svc, log: log}
}

func (h *ArticleCtrl) storageError(c echo.Context, err error) error {
	h.log.Error("article storage", zap.String("client", middleware.ClientID(c)), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func (h *ArticleCtrl) List(c echo.Context) error {
	repo := h.sessions.FromContext(c).Articles
	return c.JSON(http.StatusOK, map[string][]entities.Article{
		"latest":  repo.Latest(),
		"archive": repo.Archive(),
	})
}

func (h *ArticleCtrl) Get(c echo.Context) error {
	a, ok := h.sessions.FromContext(c).Articles.Get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "article not found"})
	}
	return c.JSON(http.StatusOK, a)
}

func (h *ArticleCtrl) Generate(c echo.Context) error {
	var req service.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	a, err := h.svc.Generate(c.Request().Context(), req)
	if errors.Is(err, ai.ErrInvalidInput) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err != nil {
		h.log.Warn("article generation failed", zap.String("client", middleware.ClientID(c)), zap.Error(err))
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Could not generate an article right now. Please try again."})
	}
	return c.JSON(http.StatusCreated, h.sessions.FromContext(c).Articles.AddLatest(a))
}

func (h *ArticleCtrl) Archive(c echo.Context) error {
	repo := h.sessions.FromContext(c).Articles
	a, ok := repo.Get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "article not found"})
	}
	saved, err := repo.SaveToArchive(a)
	if errors.Is(err, article.ErrNotArchivable) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return h.storageError(c, err)
	}
	return c.JSON(http.StatusCreated, saved)
}

func (h *ArticleCtrl) Delete(c echo.Context) error {
	repo := h.sessions.FromContext(c).Articles
	a, ok := repo.Get(c.Param("id"))
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	if err := repo.DeleteArticle(a); err != nil {
		return h.storageError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ArticleCtrl) UpdateImage(c echo.Context) error {
	var body struct {
		DataURI *string `json:"dataUri"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if body.DataURI != nil && *body.DataURI != "" {
		if _, err := ai.ParseDataURI(*body.DataURI); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
	}
	repo := h.sessions.FromContext(c).Articles
	id := c.Param("id")
	if err := repo.UpdateImage(id, body.DataURI); err != nil {
		return h.storageError(c, err)
	}
	a, ok := repo.Get(id)
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *ArticleCtrl) HTML(c echo.Context) error {
	a, ok := h.sessions.FromContext(c).Articles.Get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "article not found"})
	}
	out, err := h.svc.RenderHTML(a)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.HTML(http.StatusOK, out)
}
