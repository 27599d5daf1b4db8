package controllerImp

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agniro/pkg/advisor/controller"
	"agniro/pkg/ai"
	"agniro/pkg/middleware"
	"agniro/pkg/months"
	"agniro/pkg/session"
)

type AdvisorCtrl struct {
	flows    *ai.Flows
	sessions *session.Registry
	country  string
	log      *zap.Logger
	now      func() time.Time
}

func New(flows *ai.Flows, sessions *session.Registry, country string, log *zap.Logger) controller.AdvisorController {
	return &AdvisorCtrl{flows: flows, sessions: sessions, country: country, log: log, now: time.Now}
}

// reply maps a flow result onto the response. Bad input is the caller's
// fault; anything else means the AI collaborator let us down.
func (h *AdvisorCtrl) reply(c echo.Context, flow string, out any, err error) error {
	if errors.Is(err, ai.ErrInvalidInput) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err != nil {
		h.log.Warn("AI flow failed", zap.String("flow", flow), zap.String("client", middleware.ClientID(c)), zap.Error(err))
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "The AI assistant is unavailable right now. Please try again."})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdvisorCtrl) countryOr(v string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return h.country
}

func (h *AdvisorCtrl) Advice(c echo.Context) error {
	var in ai.AdviceInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	in.Country = h.countryOr(in.Country)
	out, err := h.flows.PlantingAdvice(c.Request().Context(), in)
	return h.reply(c, ai.FlowAdvice, out, err)
}

type autofillReq struct {
	Country      string        `json:"countryName"`
	CropName     string        `json:"cropName"`
	Region       string        `json:"region"`
	CurrentMonth *months.Month `json:"currentMonth"`
}

type autofillResp struct {
	*ai.CropAutofill
	PlantingMonths []months.Month `json:"plantingMonths"`
	HarvestMonths  []months.Month `json:"harvestMonths"`
}

// Autofill also returns the suggested month strings run through the parser
// so the crop form can be filled directly.
func (h *AdvisorCtrl) Autofill(c echo.Context) error {
	var req autofillReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	in := ai.AutofillInput{Country: h.countryOr(req.Country), CropName: req.CropName, Region: req.Region}
	if req.CurrentMonth != nil {
		in.CurrentMonth = *req.CurrentMonth
	} else {
		in.CurrentMonth = months.Month(h.now().Month() - 1)
	}
	out, err := h.flows.AutofillCrop(c.Request().Context(), in)
	if err != nil {
		return h.reply(c, ai.FlowAutofill, nil, err)
	}
	return h.reply(c, ai.FlowAutofill, autofillResp{
		CropAutofill:   out,
		PlantingMonths: months.Parse(out.PlantingMonthsStr),
		HarvestMonths:  months.Parse(out.HarvestMonthsStr),
	}, nil)
}

type diagnoseReq struct {
	ai.DiagnoseInput
	CropID string `json:"cropId"`
}

// Diagnose fills crop name, planting date and region from the client's
// crop when cropId is given and the fields are blank.
func (h *AdvisorCtrl) Diagnose(c echo.Context) error {
	var req diagnoseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	in := req.DiagnoseInput
	if req.CropID != "" {
		cr, ok := h.sessions.FromContext(c).Crops.Get(req.CropID)
		if !ok {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "crop not found"})
		}
		if in.CropName == "" {
			in.CropName = cr.Name
		}
		if in.PlantingDate == "" {
			in.PlantingDate = cr.DatePlanted
		}
		if in.Region == "" {
			in.Region = string(cr.Region)
		}
	}
	out, err := h.flows.DiagnosePlantHealth(c.Request().Context(), in)
	return h.reply(c, ai.FlowDiagnose, out, err)
}

func (h *AdvisorCtrl) Chat(c echo.Context) error {
	var in ai.ChatInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.flows.Chat(c.Request().Context(), in)
	return h.reply(c, ai.FlowChat, out, err)
}

func (h *AdvisorCtrl) News(c echo.Context) error {
	var in ai.NewsInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	in.Country = h.countryOr(in.Country)
	out, err := h.flows.FarmingNews(c.Request().Context(), in)
	return h.reply(c, ai.FlowNews, out, err)
}
