package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/solekicks/storefront/internal/config"
	"github.com/solekicks/storefront/internal/es"
	"github.com/solekicks/storefront/internal/events"
	"github.com/solekicks/storefront/internal/httpserver"
	"github.com/solekicks/storefront/internal/logging"
	authmw "github.com/solekicks/storefront/internal/middleware/auth"
	loggingmw "github.com/solekicks/storefront/internal/middleware/logging"
	"github.com/solekicks/storefront/internal/repo"
	"github.com/solekicks/storefront/internal/service"
)

const productIndex = "products"

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LogLevel)

	db, err := config.InitDB(context.Background(), configuration)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	producer := events.NewProducer(configuration.KafkaBrokers)

	esClient, err := es.NewClient(configuration)
	if err != nil {
		logger.Warn("elasticsearch unavailable, search disabled", "error", err)
		esClient = nil
	}

	r := repo.NewGormRepo(db)
	catalogSvc := &service.CatalogService{Repo: r}
	cartSvc := &service.CartService{Repo: r}
	orderSvc := &service.OrderService{Repo: r}
	userSvc := &service.UserService{Repo: r}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		ProductHandler: &httpserver.ProductHandler{Svc: catalogSvc, Producer: producer, ES: esClient, Index: productIndex},
		CartHandler:    &httpserver.CartHandler{Svc: cartSvc, Producer: producer},
		OrderHandler:   &httpserver.OrderHandler{Svc: orderSvc, Producer: producer},
		UserHandler:    &httpserver.UserHandler{Svc: userSvc},
		Auth:           authmw.New([]byte(configuration.JWTSecret)),
	}
	if esClient != nil {
		deps.SearchHandler = &httpserver.SearchHandler{ES: esClient, Index: productIndex}
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", configuration.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
