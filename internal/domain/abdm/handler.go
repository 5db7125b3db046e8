package abdm

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

func (h *Handler) RegisterRoutes(api *echo.Group) {
	role := auth.RequireRole("admin", "physician")

	g := api.Group("", role)
	g.GET("/abdm-records", h.ListRecords)
	g.GET("/abdm-records/:id", h.GetRecord)
	g.POST("/abdm-records", h.CreateRecord)
	g.POST("/abdm-records/:id/link", h.RequestLink)
	g.POST("/abdm-records/:id/link/confirm", h.ConfirmLink)
	g.POST("/abdm-records/:id/link/fail", h.FailLink)
	g.DELETE("/abdm-records/:id", h.DeleteRecord)
}

func (h *Handler) CreateRecord(c echo.Context) error {
	var rec ABDMRecord
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateRecord(c.Request().Context(), &rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) GetRecord(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rec, err := h.svc.GetRecord(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "abdm record not found")
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) ListRecords(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListRecords(c.Request().Context(), c.QueryParam("patient_id"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) DeleteRecord(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteRecord(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "abdm record not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) RequestLink(c echo.Context) error {
	return h.withTransition(c, func(id uuid.UUID) (*ABDMRecord, error) {
		return h.svc.RequestLink(c.Request().Context(), id)
	})
}

func (h *Handler) ConfirmLink(c echo.Context) error {
	var in LinkInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.withTransition(c, func(id uuid.UUID) (*ABDMRecord, error) {
		return h.svc.ConfirmLink(c.Request().Context(), id, in)
	})
}

func (h *Handler) FailLink(c echo.Context) error {
	return h.withTransition(c, func(id uuid.UUID) (*ABDMRecord, error) {
		return h.svc.FailLink(c.Request().Context(), id)
	})
}

func (h *Handler) withTransition(c echo.Context, op func(uuid.UUID) (*ABDMRecord, error)) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rec, err := op(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "abdm record not found")
		}
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}
