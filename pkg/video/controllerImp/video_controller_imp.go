package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agniro/entities"
	"agniro/pkg/middleware"
	"agniro/pkg/session"
	"agniro/pkg/video"
	"agniro/pkg/video/controller"
)

type VideoCtrl struct {
	sessions *session.Registry
	preview  *video.Previewer
	log      *zap.Logger
}

func New(sessions *session.Registry, preview *video.Previewer, log *zap.Logger) controller.VideoController {
	return &VideoCtrl{sessions: sessions, preview: preview, log: log}
}

// videoView adds the derived embed and thumbnail links.
type videoView struct {
	entities.Video
	EmbedURL     string `json:"embedUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

func view(v entities.Video) videoView {
	return videoView{Video: v, EmbedURL: video.EmbedURL(v.YoutubeURL), ThumbnailURL: video.ThumbnailURL(v.YoutubeURL)}
}

func (h *VideoCtrl) storageError(c echo.Context, err error) error {
	h.log.Error("video storage", zap.String("client", middleware.ClientID(c)), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func (h *VideoCtrl) List(c echo.Context) error {
	vs := h.sessions.FromContext(c).Videos.List()
	out := make([]videoView, len(vs))
	for i, v := range vs {
		out[i] = view(v)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *VideoCtrl) Create(c echo.Context) error {
	var req entities.Video
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	req.ID, req.UploadedThumbnailDataURI = "", ""
	v, err := h.sessions.FromContext(c).Videos.Add(req)
	if errors.Is(err, video.ErrMissingField) || errors.Is(err, video.ErrInvalidURL) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return h.storageError(c, err)
	}
	return c.JSON(http.StatusCreated, view(v))
}

func (h *VideoCtrl) Delete(c echo.Context) error {
	if err := h.sessions.FromContext(c).Videos.Delete(c.Param("id")); err != nil {
		return h.storageError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *VideoCtrl) UpdateThumbnail(c echo.Context) error {
	var body struct {
		DataURI *string `json:"dataUri"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	repo := h.sessions.FromContext(c).Videos
	id := c.Param("id")
	if err := repo.UpdateThumbnail(id, body.DataURI); err != nil {
		return h.storageError(c, err)
	}
	v, ok := repo.Get(id)
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, view(v))
}

func (h *VideoCtrl) Preview(c echo.Context) error {
	p, err := h.preview.Fetch(c.Request().Context(), c.QueryParam("url"))
	if errors.Is(err, video.ErrInvalidURL) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err != nil {
		h.log.Warn("video preview failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "could not load the video page"})
	}
	return c.JSON(http.StatusOK, p)
}
