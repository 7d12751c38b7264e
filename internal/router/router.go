// Package router maps the HTTP surface onto handlers and wires the
// access policy gate in front of them.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/campuslabs/desk-reservation/internal/config"
	"github.com/campuslabs/desk-reservation/internal/handler"
	"github.com/campuslabs/desk-reservation/internal/middleware"
)

// RegisterRoutes registers every route of the service on the provided
// Echo instance. Three tiers of access:
//
//   - public: health check and the desk browse endpoints, served
//     through the Redis response cache;
//   - member: booking and self-service listing, behind JWTAuth;
//   - admin: inventory management and the reservation administration
//     endpoints, additionally behind RequireRole("ADMIN").
//
// The rate limiter wraps everything so a misbehaving client cannot
// starve the booking path for others.
func RegisterRoutes(e *echo.Echo, dh *handler.DeskHandler, rh *handler.ReservationHandler, uh *handler.UserHandler, jwtSecret string, rdb *redis.Client) {
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	e.GET("/healthz", handler.Health)

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	e.GET("/calendar", handler.Calendar, cache)
	e.GET("/desk/catalog", handler.Catalog, cache)
	e.GET("/desk/available", dh.ListAvailable, cache)
	e.GET("/desk/:id", dh.Get, cache)

	auth := middleware.JWTAuth(jwtSecret)
	member := middleware.RequireRole("ADMIN", "MEMBER")
	admin := middleware.RequireRole("ADMIN")

	e.GET("/user/me", uh.Me, auth, member)

	desk := e.Group("/desk", auth)
	desk.GET("", dh.ListAll, member)

	deskAdmin := e.Group("/desk/admin", auth, admin)
	deskAdmin.POST("/create_desk", dh.Create)
	deskAdmin.POST("/remove_desk", dh.Remove)
	deskAdmin.PUT("/update_desk/:id", dh.Update)
	deskAdmin.PUT("/toggle_availability", dh.ToggleAvailability)

	res := e.Group("/reservation", auth, member)
	res.GET("/desk_reservations", rh.ListMine)
	res.POST("/reserve", rh.Reserve)
	res.POST("/unreserve", rh.Unreserve)
	res.GET("/:desk_id", rh.ListByDesk)

	resAdmin := e.Group("/reservation/admin", auth, admin)
	resAdmin.GET("/future", rh.ListFuture)
	resAdmin.GET("/past", rh.ListPast)
	resAdmin.DELETE("/remove_old", rh.PurgeOld)
}
