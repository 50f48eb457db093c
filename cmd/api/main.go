package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"eventbook/internal/config"
	"eventbook/internal/database"
	"eventbook/internal/gateway/razorpay"
	"eventbook/internal/middleware"
	"eventbook/internal/modules/admin"
	"eventbook/internal/modules/auth"
	"eventbook/internal/modules/booking"
	"eventbook/internal/modules/event"
	"eventbook/internal/modules/host"
	"eventbook/internal/modules/live"
	jwtsvc "eventbook/internal/pkg/jwt"
	"eventbook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("level=error msg=db close failed err=%v", err)
		}
	}()

	userRepo := repository.NewUserRepository(db)
	hostRepo := repository.NewHostRepository(db)
	eventRepo := repository.NewEventRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	gateway := razorpay.New(cfg.GatewayBaseURL, cfg.GatewayKeyID, cfg.GatewayKeySecret)
	hub := live.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	eventService := event.NewService(eventRepo, hostRepo)
	eventHandler := event.NewHandler(eventService)

	hostService := host.NewService(hostRepo, userRepo, eventRepo, bookingRepo)
	hostHandler := host.NewHandler(hostService)

	adminService := admin.NewService(eventRepo)
	adminHandler := admin.NewHandler(adminService)

	bookingService := booking.NewService(bookingRepo, eventRepo, gateway, hub, cfg.Currency, log.Printf)
	bookingHandler := booking.NewHandler(bookingService, cfg.GatewayKeyID)

	liveHandler := live.NewHandler(hub, eventRepo)

	r := gin.Default()
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		eventHandler.RegisterRoutes(v1)
		liveHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			hostHandler.RegisterRoutes(protected)

			hostOnly := protected.Group("/")
			hostOnly.Use(middleware.HostOnly())
			eventHandler.RegisterHostRoutes(hostOnly)

			adminOnly := protected.Group("/")
			adminOnly.Use(middleware.AdminOnly())
			adminHandler.RegisterRoutes(adminOnly)
			bookingHandler.RegisterAdminRoutes(adminOnly)
		}
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("level=info msg=listening addr=%s env=%s", cfg.ListenAddr, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("level=error msg=server shutdown failed err=%v", err)
	}
}
