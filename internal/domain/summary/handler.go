package summary

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
	g.GET("/summaries", h.ListSummaries)
	g.GET("/summaries/:id", h.GetSummary)
	g.POST("/summaries", h.CreateSummary)
	g.POST("/summaries/generate", h.GenerateSummary)
	g.DELETE("/summaries/:id", h.DeleteSummary)
}

func (h *Handler) CreateSummary(c echo.Context) error {
	var cs ClinicalSummary
	if err := c.Bind(&cs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateSummary(c.Request().Context(), &cs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, cs)
}

func (h *Handler) GetSummary(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cs, err := h.svc.GetSummary(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "summary not found")
	}
	return c.JSON(http.StatusOK, cs)
}

func (h *Handler) ListSummaries(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListSummaries(c.Request().Context(), c.QueryParam("patient_id"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) DeleteSummary(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteSummary(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "summary not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

type generateRequest struct {
	PatientID uuid.UUID `json:"patient_id"`
}

func (h *Handler) GenerateSummary(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.PatientID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "patient_id is required")
	}

	cs, err := h.svc.GenerateForPatient(c.Request().Context(), req.PatientID)
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrServiceUnavailable):
			return echo.NewHTTPError(http.StatusBadGateway, "model service unavailable")
		case errors.Is(err, ai.ErrSchemaViolation):
			return echo.NewHTTPError(http.StatusBadGateway, "model returned an invalid response")
		default:
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, cs)
}
