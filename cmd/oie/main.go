package main

import (
	"embed"
	"io/fs"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"oiesnake/internal/config"
	"oiesnake/internal/game"
	"oiesnake/internal/handlers"
	"oiesnake/internal/logging"
	"oiesnake/internal/random"
)

func main() {
	_ = mime.AddExtensionType(".js", "application/javascript")
	_ = mime.AddExtensionType(".css", "text/css")

	cfg, err := config.Load("8080")
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	logger := logging.Setup(cfg.LogLevel)

	src, err := random.New(cfg.Seed)
	if err != nil {
		logger.WithError(err).Fatal("seed random source")
	}
	store := game.NewStore(src)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	staticFS, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		logger.WithError(err).Fatal("static files")
	}

	r.Mount("/static", http.StripPrefix("/static", http.FileServer(http.FS(staticFS))))

	homeHandler := handlers.NewHomeHandler(store)
	gameHandler := handlers.NewGameHandler(store, cfg.BaseURL)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(15 * time.Second))
		homeHandler.RegisterRoutes(r)
		gameHandler.RegisterRoutes(r)
	})
	gameHandler.RegisterStreamRoutes(r)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       120 * time.Second,
	}

	logger.WithField("addr", cfg.Addr()).Infof("goose game listening on http://localhost%s", cfg.Addr())
	if err := server.ListenAndServe(); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}

//go:embed static/*
var embeddedStatic embed.FS
