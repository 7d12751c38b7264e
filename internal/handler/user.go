package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuslabs/desk-reservation/internal/model"
	"github.com/campuslabs/desk-reservation/internal/repository"
)

// UserGetter resolves the authenticated caller's profile record.
// *repository.UserRepo satisfies it.
type UserGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

// UserHandler serves the profile endpoint. User records are provisioned
// by the institutional identity service; this handler only reads them.
type UserHandler struct {
	users UserGetter
}

// NewUserHandler constructs a UserHandler. The store must be non-nil.
func NewUserHandler(users UserGetter) *UserHandler {
	if users == nil {
		panic("nil store passed to NewUserHandler")
	}
	return &UserHandler{users: users}
}

// Me handles GET /user/me. A valid token whose subject has no local
// user row reports 404; provisioning lag between the identity service
// and this database makes that state reachable.
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	u, err := h.users.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, u)
}
