package controllerImp

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agniro/entities"
	"agniro/pkg/climate"
	"agniro/pkg/crop"
	"agniro/pkg/crop/controller"
	"agniro/pkg/middleware"
	"agniro/pkg/months"
	"agniro/pkg/session"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type CropCtrl struct {
	sessions *session.Registry
	log      *zap.Logger
}

func New(sessions *session.Registry, log *zap.Logger) controller.CropController {
	return &CropCtrl{sessions: sessions, log: log}
}

// cropReq accepts months either as arrays or as free text for the parser.
type cropReq struct {
	Name                 string         `json:"name"`
	Region               string         `json:"region"`
	Type                 string         `json:"type"`
	PlantingMonths       []months.Month `json:"plantingMonths"`
	HarvestMonths        []months.Month `json:"harvestMonths"`
	PlantingMonthsText   *string        `json:"plantingMonthsText"`
	HarvestMonthsText    *string        `json:"harvestMonthsText"`
	WeedingInfo          string         `json:"weedingInfo"`
	Notes                string         `json:"notes"`
	IconHint             string         `json:"iconHint"`
	UploadedImageDataURI string         `json:"uploadedImageDataUri"`
	DatePlanted          string         `json:"datePlanted"`
}

func (r cropReq) toCrop(id string) entities.Crop {
	c := entities.Crop{
		ID:                   id,
		Name:                 strings.TrimSpace(r.Name),
		Region:               entities.RegionName(r.Region),
		Type:                 entities.CropType(r.Type),
		PlantingMonths:       r.PlantingMonths,
		HarvestMonths:        r.HarvestMonths,
		WeedingInfo:          strings.TrimSpace(r.WeedingInfo),
		Notes:                strings.TrimSpace(r.Notes),
		IconHint:             strings.TrimSpace(r.IconHint),
		UploadedImageDataURI: r.UploadedImageDataURI,
		DatePlanted:          r.DatePlanted,
	}
	if r.PlantingMonthsText != nil {
		c.PlantingMonths = months.Parse(*r.PlantingMonthsText)
	}
	if r.HarvestMonthsText != nil {
		c.HarvestMonths = months.Parse(*r.HarvestMonthsText)
	}
	if c.PlantingMonths == nil {
		c.PlantingMonths = []months.Month{}
	}
	if c.HarvestMonths == nil {
		c.HarvestMonths = []months.Month{}
	}
	return c
}

func (h *CropCtrl) fail(c echo.Context, err error) error {
	if errors.Is(err, crop.ErrInvalidCrop) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	h.log.Error("crop storage", zap.String("client", middleware.ClientID(c)), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

// current answers with the crop after a mutation, or 204 when the id was
// unknown and nothing changed.
func (h *CropCtrl) current(c echo.Context, id string) error {
	got, ok := h.sessions.FromContext(c).Crops.Get(id)
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, got)
}

func (h *CropCtrl) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sessions.FromContext(c).Crops.List())
}

func (h *CropCtrl) Get(c echo.Context) error {
	got, ok := h.sessions.FromContext(c).Crops.Get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "crop not found"})
	}
	return c.JSON(http.StatusOK, got)
}

func (h *CropCtrl) Create(c echo.Context) error {
	var req cropReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	created, err := h.sessions.FromContext(c).Crops.AddCrop(req.toCrop(""))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *CropCtrl) Update(c echo.Context) error {
	var req cropReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	id := c.Param("id")
	if err := h.sessions.FromContext(c).Crops.EditCrop(req.toCrop(id)); err != nil {
		return h.fail(c, err)
	}
	return h.current(c, id)
}

func (h *CropCtrl) Delete(c echo.Context) error {
	if err := h.sessions.FromContext(c).Crops.DeleteCrop(c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CropCtrl) UpdateImage(c echo.Context) error {
	var body struct {
		DataURI *string `json:"dataUri"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	id := c.Param("id")
	if err := h.sessions.FromContext(c).Crops.UpdateCropImage(id, body.DataURI); err != nil {
		return h.fail(c, err)
	}
	return h.current(c, id)
}

func (h *CropCtrl) UpdatePlantingDate(c echo.Context) error {
	var body struct {
		DatePlanted *string `json:"datePlanted"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	id := c.Param("id")
	if err := h.sessions.FromContext(c).Crops.UpdateCropPlantingDate(id, body.DatePlanted); err != nil {
		return h.fail(c, err)
	}
	return h.current(c, id)
}

func (h *CropCtrl) Reorder(c echo.Context) error {
	var body struct {
		DraggedID string `json:"draggedId"`
		TargetID  string `json:"targetId"`
	}
	if err := c.Bind(&body); err != nil || body.DraggedID == "" || body.TargetID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "draggedId and targetId are required"})
	}
	repo := h.sessions.FromContext(c).Crops
	if err := repo.ReorderCrops(body.DraggedID, body.TargetID); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, repo.List())
}

// Calendar exports the client's crops, optionally narrowed by ?region=.
func (h *CropCtrl) Calendar(c echo.Context) error {
	crops := h.sessions.FromContext(c).Crops.List()
	if region := c.QueryParam("region"); region != "" {
		kept := crops[:0]
		for _, cr := range crops {
			if string(cr.Region) == region {
				kept = append(kept, cr)
			}
		}
		crops = kept
	}
	buf, err := climate.CalendarWorkbook(crops)
	if err != nil {
		return h.fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="crop-calendar.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
