package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campuslabs/desk-reservation/internal/calendar"
	"github.com/campuslabs/desk-reservation/internal/model"
)

// Calendar handles GET /calendar. It feeds the slot picker the hour
// marks of a bookable day and the current bounds of the rolling booking
// window. The grid is fixed, so the response is safe to cache.
func Calendar(c echo.Context) error {
	start, end := calendar.Window(time.Now())
	return c.JSON(http.StatusOK, echo.Map{
		"slot_times":   calendar.SlotTimes(),
		"window_start": start,
		"window_end":   end,
	})
}

// Catalog handles GET /desk/catalog. It returns the fixed desk type and
// included-resource catalogs the inventory forms are built from.
func Catalog(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"desk_types":         model.DeskTypes(),
		"included_resources": model.IncludedResources(),
	})
}
