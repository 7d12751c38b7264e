package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campuslabs/desk-reservation/internal/calendar"
	"github.com/campuslabs/desk-reservation/internal/model"
	"github.com/campuslabs/desk-reservation/internal/repository"
	"github.com/campuslabs/desk-reservation/internal/service"
)

// ReservationServicer is the slice of the reservation service the
// handler depends on. *service.ReservationService satisfies it.
type ReservationServicer interface {
	Reserve(ctx context.Context, deskID, userID uint64, date time.Time) (*model.Reservation, error)
	Cancel(ctx context.Context, deskID, reservationID uint64) error
	OverrideCancel(ctx context.Context, deskID, reservationID, adminID uint64) error
	ListByUser(ctx context.Context, userID uint64) ([]model.UserReservation, error)
	ListByDesk(ctx context.Context, deskID uint64) ([]model.Reservation, error)
	ListFuture(ctx context.Context, pidPrefix string) ([]model.ReservationDetail, error)
	ListPast(ctx context.Context, pidPrefix string) ([]model.ReservationDetail, error)
	PurgeOld(ctx context.Context) (int64, error)
}

// reserveRequest is the body of POST /reservation/reserve and
// /reservation/unreserve: the desk plus the reservation details. When
// reserving, the client may send the reservation date as an absolute
// instant, or as a calendar day plus one of the hour marks from
// GET /calendar in the slot field.
type reserveRequest struct {
	Desk        model.Desk        `json:"desk"`
	Reservation model.Reservation `json:"reservation"`
	Slot        string            `json:"slot,omitempty"`
}

// ReservationHandler serves the booking endpoints. All methods assume
// JWT authentication has run; the admin listing endpoints are
// additionally gated by role middleware.
type ReservationHandler struct {
	svc ReservationServicer
}

// NewReservationHandler constructs a ReservationHandler. The service
// must be non-nil.
func NewReservationHandler(svc ReservationServicer) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{svc: svc}
}

// ListMine handles GET /reservation/desk_reservations. It returns all
// of the caller's reservations, past and future, each with its desk.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	out, err := h.svc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

// ListByDesk handles GET /reservation/:desk_id. It feeds the slot
// picker with the desk's upcoming reservations.
func (h *ReservationHandler) ListByDesk(c echo.Context) error {
	deskID, err := strconv.ParseUint(c.Param("desk_id"), 10, 64)
	if err != nil || deskID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid desk id"})
	}
	out, err := h.svc.ListByDesk(c.Request().Context(), deskID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

// Reserve handles POST /reservation/reserve. The slot must be a weekday
// hour inside the rolling window that has not started yet, on an
// available desk, and not already booked. Failures are distinguishable
// so the UI can render an accurate message.
func (h *ReservationHandler) Reserve(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reserveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Desk.ID == 0 || req.Reservation.Date.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "desk and reservation date are required"})
	}
	date := req.Reservation.Date
	if req.Slot != "" {
		if calendar.IsSlotInPast(time.Now(), req.Reservation.Date, req.Slot) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": service.ErrSlotInPast.Error()})
		}
		date = calendar.SlotInstant(req.Reservation.Date, req.Slot)
	}
	res, err := h.svc.Reserve(c.Request().Context(), req.Desk.ID, userID, date)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDeskNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "desk not found"})
		case errors.Is(err, repository.ErrSlotTaken):
			return c.JSON(http.StatusConflict, echo.Map{"error": "slot already reserved"})
		case errors.Is(err, service.ErrDeskUnavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "desk is unavailable"})
		case errors.Is(err, service.ErrInvalidSlot), errors.Is(err, service.ErrSlotInPast):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, res)
}

// Unreserve handles POST /reservation/unreserve. Members cancel their
// own reservations; an admin cancelling someone else's reservation is
// recorded as an override. Cancelling an already-cancelled reservation
// reports 404 rather than silently succeeding.
func (h *ReservationHandler) Unreserve(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reserveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	override := getRole(c) == "ADMIN" && req.Reservation.UserID != 0 && req.Reservation.UserID != userID
	ctx := c.Request().Context()
	if override {
		err = h.svc.OverrideCancel(ctx, req.Desk.ID, req.Reservation.ID, userID)
	} else {
		err = h.svc.Cancel(ctx, req.Desk.ID, req.Reservation.ID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	msg := "reservation cancelled"
	if override {
		msg = "reservation cancelled by admin override"
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": req.Reservation, "message": msg})
}

// ListFuture handles GET /reservation/admin/future. The optional pid
// query parameter filters holders by decimal PID prefix.
func (h *ReservationHandler) ListFuture(c echo.Context) error {
	out, err := h.svc.ListFuture(c.Request().Context(), c.QueryParam("pid"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

// ListPast handles GET /reservation/admin/past.
func (h *ReservationHandler) ListPast(c echo.Context) error {
	out, err := h.svc.ListPast(c.Request().Context(), c.QueryParam("pid"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

// PurgeOld handles DELETE /reservation/admin/remove_old. It deletes
// reservations past the retention window and reports the count.
func (h *ReservationHandler) PurgeOld(c echo.Context) error {
	removed, err := h.svc.PurgeOld(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"removed": removed})
}
