package consent

import (
	"errors"
	"net/http"
	"time"

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
	role := auth.RequireRole("admin", "physician", "nurse")

	g := api.Group("", role)
	g.GET("/consents", h.ListRecords)
	g.GET("/consents/:id", h.GetRecord)
	g.POST("/consents", h.CreateRequest)
	g.POST("/consents/:id/approve", h.ApproveConsent)
	g.POST("/consents/:id/reject", h.RejectConsent)
	g.POST("/consents/:id/revoke", h.RevokeConsent)
	g.DELETE("/consents/:id", h.DeleteRecord)
}

func (h *Handler) CreateRequest(c echo.Context) error {
	var cr ConsentRecord
	if err := c.Bind(&cr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateRequest(c.Request().Context(), &cr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, cr)
}

func (h *Handler) GetRecord(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cr, err := h.svc.GetRecord(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "consent record not found")
	}
	return c.JSON(http.StatusOK, cr)
}

func (h *Handler) ListRecords(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListRecords(c.Request().Context(),
		c.QueryParam("patient_id"), c.QueryParam("status"), pg.Limit, pg.Offset)
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
			return echo.NewHTTPError(http.StatusNotFound, "consent record not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

type approveRequest struct {
	ApprovedBy string     `json:"approved_by"`
	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
}

func (h *Handler) ApproveConsent(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req approveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.ApprovedBy == "" {
		req.ApprovedBy = auth.UserIDFromContext(c.Request().Context())
	}

	cr, err := h.svc.Approve(c.Request().Context(), id, req.ApprovedBy, req.ValidFrom, req.ValidUntil)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "consent record not found")
		}
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, cr)
}

func (h *Handler) RejectConsent(c echo.Context) error {
	return h.withTransition(c, func(id uuid.UUID) (*ConsentRecord, error) {
		return h.svc.Reject(c.Request().Context(), id)
	})
}

func (h *Handler) RevokeConsent(c echo.Context) error {
	return h.withTransition(c, func(id uuid.UUID) (*ConsentRecord, error) {
		return h.svc.Revoke(c.Request().Context(), id)
	})
}

func (h *Handler) withTransition(c echo.Context, op func(uuid.UUID) (*ConsentRecord, error)) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cr, err := op(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "consent record not found")
		}
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, cr)
}
