package interaction

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
	role := auth.RequireRole("admin", "physician", "pharmacist")

	g := api.Group("", role)
	g.GET("/interactions", h.ListInteractions)
	g.GET("/interactions/:id", h.GetInteraction)
	g.POST("/interactions", h.CreateInteraction)
	g.POST("/interactions/check", h.CheckDrug)
	g.POST("/interactions/:id/review", h.ReviewInteraction)
	g.DELETE("/interactions/:id", h.DeleteInteraction)
}

func (h *Handler) CreateInteraction(c echo.Context) error {
	var di DrugInteraction
	if err := c.Bind(&di); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateInteraction(c.Request().Context(), &di); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, di)
}

func (h *Handler) GetInteraction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	di, err := h.svc.GetInteraction(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "interaction not found")
	}
	return c.JSON(http.StatusOK, di)
}

func (h *Handler) ListInteractions(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListInteractions(c.Request().Context(),
		c.QueryParam("patient_id"), c.QueryParam("status"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) DeleteInteraction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteInteraction(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "interaction not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

type checkRequest struct {
	PatientID uuid.UUID `json:"patient_id"`
	DrugName  string    `json:"drug_name"`
}

func (h *Handler) CheckDrug(c echo.Context) error {
	var req checkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.PatientID == uuid.Nil || req.DrugName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "patient_id and drug_name are required")
	}

	findings, err := h.svc.CheckDrug(c.Request().Context(), req.PatientID, req.DrugName)
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
	if findings == nil {
		findings = []*DrugInteraction{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"interactions": findings,
		"total":        len(findings),
	})
}

type reviewRequest struct {
	Status     string `json:"status"`
	ReviewedBy string `json:"reviewed_by"`
}

func (h *Handler) ReviewInteraction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.ReviewedBy == "" {
		req.ReviewedBy = auth.UserIDFromContext(c.Request().Context())
	}

	di, err := h.svc.Review(c.Request().Context(), id, req.Status, req.ReviewedBy)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "interaction not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, di)
}
