package analytics

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Jashwanth-0624/SwastyaConnect/internal/platform/ai"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/platform/auth"
	"github.com/Jashwanth-0624/SwastyaConnect/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	role := auth.RequireRole("admin", "physician")

	g := api.Group("", role)
	g.GET("/predictions", h.ListPredictions)
	g.GET("/predictions/:id", h.GetPrediction)
	g.POST("/predictions", h.CreatePrediction)
	g.POST("/predictions/generate", h.GeneratePrediction)
	g.DELETE("/predictions/:id", h.DeletePrediction)
}

func (h *Handler) CreatePrediction(c echo.Context) error {
	var pa PredictiveAnalytic
	if err := c.Bind(&pa); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreatePrediction(c.Request().Context(), &pa); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, pa)
}

func (h *Handler) GetPrediction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pa, err := h.svc.GetPrediction(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "prediction not found")
	}
	return c.JSON(http.StatusOK, pa)
}

func (h *Handler) ListPredictions(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPredictions(c.Request().Context(),
		c.QueryParam("patient_id"), c.QueryParam("prediction_type"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) DeletePrediction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeletePrediction(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "prediction not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

type generateRequest struct {
	PatientID      uuid.UUID `json:"patient_id"`
	PredictionType string    `json:"prediction_type"`
}

func (h *Handler) GeneratePrediction(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.PatientID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "patient_id is required")
	}

	pa, err := h.svc.GenerateForPatient(c.Request().Context(), req.PatientID, req.PredictionType)
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrServiceUnavailable):
			return echo.NewHTTPError(http.StatusBadGateway, "model service unavailable")
		case errors.Is(err, ai.ErrSchemaViolation):
			return echo.NewHTTPError(http.StatusBadGateway, "model returned an invalid response")
		default:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, pa)
}
