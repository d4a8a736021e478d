package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LovationAdmin/finanzas/config"
	"github.com/LovationAdmin/finanzas/events"
	"github.com/LovationAdmin/finanzas/handlers"
	"github.com/LovationAdmin/finanzas/middleware"
	"github.com/LovationAdmin/finanzas/routes"
	"github.com/LovationAdmin/finanzas/services"
	"github.com/LovationAdmin/finanzas/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if utils.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	if err := config.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	db, dialect, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

	utils.SafeInfo("✅ Database connected successfully")

	wsHandler := handlers.NewWSHandler()
	defer wsHandler.Close()

	publishers := events.Multi{wsHandler}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			log.Fatal("Failed to connect to AMQP broker: ", err)
		}
		defer amqpPublisher.Close()
		publishers = append(publishers, amqpPublisher)
		utils.SafeInfo("📨 Publishing movement events to exchange %q", cfg.AMQPExchange)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)

	router := routes.NewRouter(routes.Options{
		Movements:   services.NewMovementService(db, publishers),
		Identity:    services.NewUserService(db),
		Feed:        wsHandler,
		RateLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	utils.LogStartup("API Financiera", routes.Version, cfg.Port, string(dialect))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return limiter.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		utils.SafeLog("🛑 Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("❌ Server error: %v", err)
		os.Exit(1)
	}
	utils.SafeLog("👋 Server stopped")
}
