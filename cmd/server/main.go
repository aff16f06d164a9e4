package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nmaksimov/estore/internal/auth"
	"github.com/nmaksimov/estore/internal/config"
	"github.com/nmaksimov/estore/internal/es"
	"github.com/nmaksimov/estore/internal/handlers"
	"github.com/nmaksimov/estore/internal/logging"
	"github.com/nmaksimov/estore/internal/mykafka"
	"github.com/nmaksimov/estore/internal/repo"
	httpserver "github.com/nmaksimov/estore/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod, err = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
		if err != nil {
			log.Fatal(err)
		}
	}

	tokenService := &auth.TokenService{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret}
	userService := &auth.UserService{DB: db}
	store := repo.New(db)

	// One-shot superuser bootstrap. A duplicate email is fine on restart.
	if configuration.ADMIN_EMAIL != "" && configuration.ADMIN_PASSWORD != "" {
		if _, err := userService.CreateSuperuser(context.Background(), configuration.ADMIN_EMAIL, configuration.ADMIN_PASSWORD); err != nil && !errors.Is(err, auth.ErrValidation) {
			log.Fatalf("superuser bootstrap error: %v", err)
		}
	}

	deps := httpserver.Deps{
		AuthHandler:  &handlers.AuthHandler{Users: userService, Tokens: tokenService, Producer: prod},
		ItemHandler:  &handlers.ItemHandler{Repo: store},
		OrderHandler: &handlers.OrderHandler{Repo: store},
		AdminHandler: &handlers.AdminHandler{Repo: store, Producer: prod},
		TokenService: tokenService,
	}

	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		deps.SearchHandler = &handlers.SearchHandler{ES: esClient, Index: "items"}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	httpserver.Register(e, &deps)

	port := configuration.PORT
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
