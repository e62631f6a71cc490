package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"oiesnake/internal/game"
	"oiesnake/internal/goose"
	"oiesnake/internal/viewmodel"
	"oiesnake/views/pages"
)

const (
	appTitle      = "Oie"
	maxNameLength = 20
)

type HomeHandler struct {
	store *game.Store
}

func NewHomeHandler(store *game.Store) *HomeHandler {
	return &HomeHandler{store: store}
}

func (h *HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Post("/games", h.createGame)
}

func (h *HomeHandler) home(w http.ResponseWriter, r *http.Request) {
	render(w, r, pages.HomePage(viewmodel.HomePage{Title: appTitle}))
}

func (h *HomeHandler) createGame(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	names := make([]string, 0, len(r.Form["name"]))
	for _, name := range r.Form["name"] {
		names = append(names, truncateName(name))
	}

	instance, err := h.store.CreateGame(names)
	if err != nil {
		var verr *goose.ValidationError
		if errors.As(err, &verr) {
			log.WithField("reason", verr.Reason).Info("rejected game setup")
			renderStatus(w, r, http.StatusBadRequest, pages.HomePage(viewmodel.HomePage{
				Title: appTitle,
				Names: names,
				Error: verr.Error(),
			}))
			return
		}
		log.WithError(err).Error("create game")
		http.Error(w, "could not create game", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+instance.ID, http.StatusSeeOther)
}

// truncateName trims spaces and keeps at most maxNameLength characters.
func truncateName(name string) string {
	name = strings.TrimSpace(name)
	runes := []rune(name)
	if len(runes) > maxNameLength {
		name = strings.TrimSpace(string(runes[:maxNameLength]))
	}
	return name
}
