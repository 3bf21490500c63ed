package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/eventgate/checkin/internal/config"
	"github.com/eventgate/checkin/internal/database"
	"github.com/eventgate/checkin/internal/handler"
	"github.com/eventgate/checkin/internal/middleware"
	"github.com/eventgate/checkin/internal/repository"
	"github.com/eventgate/checkin/internal/router"
	queue_publisher "github.com/eventgate/checkin/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("migrate schema: %v", err)
	}

	regs := repository.NewRegistrationRepo(db)
	settings := repository.NewSettingsRepo(db)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg,
		handler.NewRegisterHandler(cfg, regs),
		handler.NewAdminHandler(cfg),
		handler.NewCheckinHandler(cfg, regs, settings, queue_publisher.Rabbit{}),
		limiter,
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	log.Fatal(e.Start(addr))
}
