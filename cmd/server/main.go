package main // Entry point package

import (
    "context"
    "log"
    "os/signal"
    "syscall"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/adplaze/ooh-marketplace/internal/config"
    "github.com/adplaze/ooh-marketplace/internal/database"
    "github.com/adplaze/ooh-marketplace/internal/handler"
    "github.com/adplaze/ooh-marketplace/internal/middleware"
    "github.com/adplaze/ooh-marketplace/internal/queue"
    "github.com/adplaze/ooh-marketplace/internal/repository"
    "github.com/adplaze/ooh-marketplace/internal/router"
    "github.com/adplaze/ooh-marketplace/internal/worker"
)

func main() {
    _ = godotenv.Load() // .env is optional; real deployments set the environment directly
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    rdb := config.NewRedisClient() // nil when Redis is unreachable; caching and rate limiting degrade to no-ops

    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    spaces := repository.NewSpaceRepo(db)
    bookings := repository.NewBookingRepo(db)
    reviews := repository.NewReviewRepo(db)

    pageCache := middleware.NewPageCache(config.LoadCacheConfig(), rdb)
    limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

    auth := handler.NewAuthHandler(cfg, users, tokens)
    oauth := handler.NewOAuthHandler(cfg, auth)
    public := handler.NewPublicHandler(spaces, reviews, rdb)
    advertiser := handler.NewAdvertiserHandler(spaces, bookings, reviews)
    agencySpaces := handler.NewAgencySpaceHandler(cfg, spaces, pageCache)
    agencyBookings := handler.NewAgencyBookingHandler(bookings, pageCache)
    admin := handler.NewAdminHandler(cfg, users, spaces, bookings, pageCache)

    e := echo.New()
    e.HideBanner = true
    e.Use(echomw.Logger())
    e.Use(echomw.Recover())

    router.RegisterRoutes(e, cfg.UploadDir)
    router.RegisterAuth(e, auth, oauth, cfg.JWTSecret)
    router.RegisterPublic(e, public, pageCache)
    router.RegisterAdvertiser(e, advertiser, cfg.JWTSecret, limit)
    router.RegisterAgency(e, agencySpaces, agencyBookings, cfg.JWTSecret, limit)
    router.RegisterAdmin(e, admin, cfg.JWTSecret, cfg.AdminPIN, limit)

    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    go func() {
        if err := queue.StartBookingConsumer(); err != nil {
            log.Printf("booking consumer stopped: %v", err)
        }
    }()
    go worker.NewMaintenance(bookings, tokens).Run(ctx)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
