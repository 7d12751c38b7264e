package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campuslabs/desk-reservation/internal/model"
	"github.com/campuslabs/desk-reservation/internal/repository"
	"github.com/campuslabs/desk-reservation/internal/service"
)

// DeskServicer is the slice of the desk service the handler depends on.
// *service.DeskService satisfies it; tests substitute mocks.
type DeskServicer interface {
	ListAll(ctx context.Context) ([]model.Desk, error)
	ListAvailable(ctx context.Context, typeFilter string) ([]model.Desk, error)
	GetDesk(ctx context.Context, id uint64) (*model.Desk, error)
	CreateDesk(ctx context.Context, entry model.DeskEntry) (*model.Desk, error)
	UpdateDesk(ctx context.Context, id uint64, entry model.DeskEntry) (*model.Desk, error)
	RemoveDeskCascade(ctx context.Context, id uint64) (*model.Desk, error)
	ToggleAvailabilityCascade(ctx context.Context, id uint64, available bool) (*model.Desk, int64, error)
}

// DeskHandler serves the desk inventory endpoints. Role enforcement for
// the admin operations happens in middleware; by the time a request
// reaches these methods it is authorized.
type DeskHandler struct {
	svc DeskServicer
}

// NewDeskHandler constructs a DeskHandler. The service must be non-nil.
func NewDeskHandler(svc DeskServicer) *DeskHandler {
	if svc == nil {
		panic("nil service passed to NewDeskHandler")
	}
	return &DeskHandler{svc: svc}
}

// ListAll handles GET /desk. It returns every desk in the inventory
// ordered by tag, including desks currently marked unavailable.
func (h *DeskHandler) ListAll(c echo.Context) error {
	desks, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, desks)
}

// ListAvailable handles GET /desk/available. The optional desk_type
// query parameter restricts results to one desk type; "All" or an
// absent parameter returns everything reservable.
func (h *DeskHandler) ListAvailable(c echo.Context) error {
	desks, err := h.svc.ListAvailable(c.Request().Context(), c.QueryParam("desk_type"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, desks)
}

// Get handles GET /desk/:id.
func (h *DeskHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid desk id"})
	}
	desk, err := h.svc.GetDesk(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrDeskNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "desk not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, desk)
}

// Create handles POST /desk/admin/create_desk. The body is a DeskEntry;
// the tag is canonicalized to upper case and must be unique across the
// whole inventory.
func (h *DeskHandler) Create(c echo.Context) error {
	var entry model.DeskEntry
	if err := c.Bind(&entry); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	desk, err := h.svc.CreateDesk(c.Request().Context(), entry)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateTag):
			return c.JSON(http.StatusConflict, echo.Map{"error": "desk tag already in use"})
		case errors.Is(err, service.ErrInvalidTag),
			errors.Is(err, service.ErrInvalidDeskType),
			errors.Is(err, service.ErrInvalidResource):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, desk)
}

// Remove handles POST /desk/admin/remove_desk. The body identifies the
// desk to delete; all of its reservations, past and future, are removed
// in the same operation. The removed desk is echoed back.
func (h *DeskHandler) Remove(c echo.Context) error {
	var desk model.Desk
	if err := c.Bind(&desk); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	removed, err := h.svc.RemoveDeskCascade(c.Request().Context(), desk.ID)
	if err != nil {
		if errors.Is(err, repository.ErrDeskNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "desk not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, removed)
}

// Update handles PUT /desk/admin/update_desk/:id. Type, included
// resource and availability are mutable; the tag is not.
func (h *DeskHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid desk id"})
	}
	var entry model.DeskEntry
	if err := c.Bind(&entry); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	desk, err := h.svc.UpdateDesk(c.Request().Context(), id, entry)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDeskNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "desk not found"})
		case errors.Is(err, service.ErrInvalidDeskType), errors.Is(err, service.ErrInvalidResource):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, desk)
}

// ToggleAvailability handles PUT /desk/admin/toggle_availability. The
// body carries the desk ID and the desired availability state, which
// makes retries idempotent. Turning a desk off cancels its upcoming
// reservations; the count is reported in the X-Cascaded-Reservations
// response header for confirmation messaging.
func (h *DeskHandler) ToggleAvailability(c echo.Context) error {
	var desk model.Desk
	if err := c.Bind(&desk); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	updated, removed, err := h.svc.ToggleAvailabilityCascade(c.Request().Context(), desk.ID, desk.Available)
	if err != nil {
		if errors.Is(err, repository.ErrDeskNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "desk not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	c.Response().Header().Set("X-Cascaded-Reservations", strconv.FormatInt(removed, 10))
	return c.JSON(http.StatusOK, updated)
}
