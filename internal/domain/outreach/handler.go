package outreach

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Jashwanth-0624/SwastyaConnect/internal/platform/auth"
	"github.com/Jashwanth-0624/SwastyaConnect/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the outreach endpoints. Creation is open so the
// public site can submit; reading and managing requires an admin.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/demo-requests", h.CreateDemoRequest)
	api.POST("/feature-interests", h.CreateFeatureInterest)

	admin := api.Group("", auth.RequireRole("admin"))
	admin.GET("/demo-requests", h.ListDemoRequests)
	admin.GET("/demo-requests/:id", h.GetDemoRequest)
	admin.PUT("/demo-requests/:id/status", h.UpdateDemoStatus)
	admin.DELETE("/demo-requests/:id", h.DeleteDemoRequest)
	admin.GET("/feature-interests", h.ListFeatureInterests)
	admin.DELETE("/feature-interests/:id", h.DeleteFeatureInterest)
}

func (h *Handler) CreateDemoRequest(c echo.Context) error {
	var dr DemoRequest
	if err := c.Bind(&dr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateDemoRequest(c.Request().Context(), &dr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, dr)
}

func (h *Handler) GetDemoRequest(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	dr, err := h.svc.GetDemoRequest(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "demo request not found")
	}
	return c.JSON(http.StatusOK, dr)
}

func (h *Handler) ListDemoRequests(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListDemoRequests(c.Request().Context(), c.QueryParam("status"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateDemoStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	dr, err := h.svc.UpdateDemoStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "demo request not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, dr)
}

func (h *Handler) DeleteDemoRequest(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteDemoRequest(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "demo request not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CreateFeatureInterest(c echo.Context) error {
	var fi FeatureInterest
	if err := c.Bind(&fi); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateFeatureInterest(c.Request().Context(), &fi); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, fi)
}

func (h *Handler) ListFeatureInterests(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListFeatureInterests(c.Request().Context(), c.QueryParam("feature_name"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) DeleteFeatureInterest(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteFeatureInterest(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "feature interest not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
