package main

import (
    "context"
    "log"
    "time"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "smart-appointments/internal/config"
    "smart-appointments/internal/database"
    "smart-appointments/internal/handler"
    "smart-appointments/internal/queue"
    "smart-appointments/internal/repository"
    "smart-appointments/internal/router"
    queue_publisher "smart-appointments/internal/service"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database connection failed: %v", err)
    }
    defer db.Close()

    // First run creates the tables and seeds the demo organizations
    // and staff.  An unreachable or broken store is a startup error,
    // never a degraded mode.
    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    if err := database.EnsureSchema(ctx, db); err != nil {
        cancel()
        log.Fatalf("schema bootstrap failed: %v", err)
    }
    cancel()

    orgRepo := repository.NewOrganizationRepo(db)
    customerRepo := repository.NewCustomerRepo(db)
    staffRepo := repository.NewStaffRepo(db)
    apptRepo := repository.NewAppointmentRepo(db)

    apptHandler := handler.NewAppointmentHandler(apptRepo, customerRepo, orgRepo, staffRepo)
    apptHandler.Publish = queue_publisher.PublishAppointmentEvent
    staffHandler := handler.NewStaffHandler(staffRepo, orgRepo)
    orgHandler := handler.NewOrganizationHandler(orgRepo)

    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable; response cache and rate limiting disabled")
    }

    e := echo.New()
    e.HideBanner = true
    e.Validator = handler.NewValidator()
    router.RegisterRoutes(e)
    router.RegisterAPI(e, apptHandler, staffHandler, orgHandler, rdb)

    // The consumer keeps its own reconnect loop; it never takes the
    // API down when the broker is missing.
    go func() {
        if err := queue.StartAppointmentConsumer(); err != nil {
            log.Printf("appointment consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
