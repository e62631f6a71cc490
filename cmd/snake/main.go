package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"oiesnake/internal/arcade"
	"oiesnake/internal/config"
	"oiesnake/internal/logging"
	"oiesnake/internal/random"
)

func main() {
	cfg, err := config.Load("8081")
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	logger := logging.Setup(cfg.LogLevel)

	src, err := random.New(cfg.Seed)
	if err != nil {
		logger.WithError(err).Fatal("seed random source")
	}
	store := arcade.NewStore(src, cfg.SnakeTick, cfg.SnakeIdle, cfg.SnakeCols, cfg.SnakeRows)
	handler := arcade.NewHandler(store, cfg.BaseURL)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(15 * time.Second))
		handler.RegisterRoutes(r)
	})
	handler.RegisterSocketRoutes(r)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       120 * time.Second,
	}

	logger.WithFields(log.Fields{"addr": cfg.Addr(), "tick": cfg.SnakeTick}).Infof("snake listening on http://localhost%s", cfg.Addr())
	if err := server.ListenAndServe(); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
