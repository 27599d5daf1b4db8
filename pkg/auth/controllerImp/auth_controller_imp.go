package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agniro/entities"
	"agniro/pkg/auth/controller"
	"agniro/pkg/session"
)

type authCtrl struct{ sessions *session.Registry }

func NewAuthController(sessions *session.Registry) controller.AuthController {
	return &authCtrl{sessions: sessions}
}

// WhoAmI reports the client id issued by the cookie middleware and the size
// of that client's collections. "archived" counts only the articles the
// client saved, not the built-in ones.
func (h *authCtrl) WhoAmI(c echo.Context) error {
	s := h.sessions.FromContext(c)
	archived := 0
	for _, a := range s.Articles.Archive() {
		if a.Type == entities.ArticleAIArchived {
			archived++
		}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"clientId": s.ClientID,
		"crops":    len(s.Crops.List()),
		"archived": archived,
		"videos":   len(s.Videos.List()),
	})
}
