package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/campuslabs/desk-reservation/internal/config"
	"github.com/campuslabs/desk-reservation/internal/database"
	"github.com/campuslabs/desk-reservation/internal/handler"
	"github.com/campuslabs/desk-reservation/internal/queue"
	"github.com/campuslabs/desk-reservation/internal/repository"
	"github.com/campuslabs/desk-reservation/internal/router"
	"github.com/campuslabs/desk-reservation/internal/service"
)

func main() {
	// Load .env for local development; in deployment the variables
	// come from the environment and the file is simply absent.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	deskRepo := repository.NewDeskRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	userRepo := repository.NewUserRepo(db)

	deskSvc := service.NewDeskService(deskRepo)
	reservationSvc := service.NewReservationService(reservationRepo, deskRepo, queue.PublishConfirmedAsync)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, response cache and rate limiting disabled")
	}

	e := echo.New()
	router.RegisterRoutes(e,
		handler.NewDeskHandler(deskSvc),
		handler.NewReservationHandler(reservationSvc),
		handler.NewUserHandler(userRepo),
		cfg.JWTSecret,
		rdb,
	)

	// Tail confirmation events into logs/reservation.log. The consumer
	// reconnects on its own; a missing broker only costs the log.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
