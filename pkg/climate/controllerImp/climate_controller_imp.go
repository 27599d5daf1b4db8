package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agniro/pkg/climate"
	"agniro/pkg/months"
)

type ClimateCtrl struct{}

func New() *ClimateCtrl { return &ClimateCtrl{} }

func (h *ClimateCtrl) Regions(c echo.Context) error {
	return c.JSON(http.StatusOK, climate.Regions())
}

func (h *ClimateCtrl) Rainfall(c echo.Context) error {
	return c.JSON(http.StatusOK, climate.RainfallTable())
}

// ParseMonths runs ?q= through the month parser, for forms that preview
// the months a free-text entry resolves to.
func (h *ClimateCtrl) ParseMonths(c echo.Context) error {
	ms := months.Parse(c.QueryParam("q"))
	return c.JSON(http.StatusOK, map[string]any{
		"months":    ms,
		"formatted": months.Format(ms),
	})
}
