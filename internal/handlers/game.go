package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"oiesnake/internal/game"
	"oiesnake/internal/goose"
	"oiesnake/internal/viewmodel"
	"oiesnake/views/components"
	"oiesnake/views/pages"
)

var updateEvents = []string{"board", "players", "log"}

type GameHandler struct {
	store   *game.Store
	baseURL string
}

// NewGameHandler serves goose games from store. baseURL, when set, prefixes
// the share link instead of the request host.
func NewGameHandler(store *game.Store, baseURL string) *GameHandler {
	return &GameHandler{store: store, baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

func (h *GameHandler) RegisterRoutes(r chi.Router) {
	r.Get("/game/{id}", h.gamePage)
	r.Post("/game/{id}/roll", h.roll)
	r.Post("/game/{id}/restart", h.restartGame)
	r.Get("/game/{id}/board", h.boardFragment)
	r.Get("/game/{id}/players", h.playersFragment)
	r.Get("/game/{id}/log", h.logFragment)
	r.Get("/game/{id}/state", h.state)
}

// RegisterStreamRoutes mounts the long-lived SSE route, kept apart so request
// timeouts apply to the other routes only.
func (h *GameHandler) RegisterStreamRoutes(r chi.Router) {
	r.Get("/game/{id}/stream", h.stream)
}

func (h *GameHandler) gamePage(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")
	instance, ok := h.store.GetGame(gameID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	snapshot := instance.Snapshot()
	data := viewmodel.GamePage{
		Title:     appTitle,
		GameID:    gameID,
		InviteURL: h.buildInviteURL(r, gameID),
		Board:     buildBoardFragment(snapshot),
		Players:   buildPlayersFragment(snapshot),
		Log:       buildLogFragment(snapshot),
	}
	render(w, r, pages.GamePage(data))
}

func (h *GameHandler) roll(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")
	instance, ok := h.store.GetGame(gameID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	playerIndex := -1
	if raw := strings.TrimSpace(r.FormValue("player")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid player", http.StatusBadRequest)
			return
		}
		playerIndex = n
	}

	events, err := instance.Roll(playerIndex)
	if err != nil {
		log.WithFields(log.Fields{"game": gameID, "player": playerIndex}).WithError(err).Info("roll rejected")
		switch {
		case errors.Is(err, goose.ErrUnknownPlayer):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, goose.ErrOutOfTurn), errors.Is(err, goose.ErrGameOver):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	for _, e := range events {
		log.WithFields(log.Fields{"game": gameID, "player": e.Player, "event": e.Kind.String()}).Debug(e.Message())
	}
	if instance.IsOver() {
		snapshot := instance.Snapshot()
		log.WithFields(log.Fields{"game": gameID, "player": snapshot.WinnerName}).Info("goose game won")
	}
	h.store.Publish(gameID, updateEvents...)
	h.respondAfterAction(w, r, gameID)
}

func (h *GameHandler) restartGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")
	instance, ok := h.store.GetGame(gameID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	instance.Restart()
	log.WithField("game", gameID).Info("goose game restarted")
	h.store.Publish(gameID, updateEvents...)
	h.respondAfterAction(w, r, gameID)
}

func (h *GameHandler) respondAfterAction(w http.ResponseWriter, r *http.Request, gameID string) {
	if r.Header.Get("Hx-Request") == "true" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/game/"+gameID, http.StatusSeeOther)
}

func (h *GameHandler) boardFragment(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.store.GetGame(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	render(w, r, components.BoardFragment(buildBoardFragment(instance.Snapshot())))
}

func (h *GameHandler) playersFragment(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.store.GetGame(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	render(w, r, components.PlayersFragment(buildPlayersFragment(instance.Snapshot())))
}

func (h *GameHandler) logFragment(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.store.GetGame(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	render(w, r, components.LogFragment(buildLogFragment(instance.Snapshot())))
}

func (h *GameHandler) state(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.store.GetGame(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, toStateJSON(instance.Snapshot()))
}

func (h *GameHandler) stream(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")
	instance, ok := h.store.GetGame(gameID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	hub, ok := h.store.Broadcaster(gameID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	send := func(events ...string) {
		snapshot := instance.Snapshot()
		for _, event := range events {
			switch event {
			case "board":
				writeSSE(w, "board", renderToString(r, components.BoardFragment(buildBoardFragment(snapshot))))
			case "players":
				writeSSE(w, "players", renderToString(r, components.PlayersFragment(buildPlayersFragment(snapshot))))
			case "log":
				writeSSE(w, "log", renderToString(r, components.LogFragment(buildLogFragment(snapshot))))
			}
		}
		flusher.Flush()
	}

	send(updateEvents...)

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-sub:
			if !open {
				return
			}
			send(event)
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}

func (h *GameHandler) buildInviteURL(r *http.Request, gameID string) string {
	if h.baseURL != "" {
		return h.baseURL + "/game/" + gameID
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/game/" + gameID
}

func buildBoardFragment(snapshot game.Snapshot) viewmodel.BoardFragment {
	cells := make([]viewmodel.BoardCell, 0, goose.FinalSquare+1)
	for sq := goose.StartSquare; sq <= goose.FinalSquare; sq++ {
		cell := viewmodel.BoardCell{Square: sq}
		if effect, ok := goose.SpecialEffectAt(sq); ok {
			cell.Effect = strings.ToLower(effect.Kind.String())
			cell.Target = effect.Target
		}
		for _, p := range snapshot.Players {
			if p.Position == sq {
				cell.Tokens = append(cell.Tokens, p.Name)
			}
		}
		cells = append(cells, cell)
	}
	return viewmodel.BoardFragment{GameID: snapshot.ID, Cells: cells}
}

func buildPlayersFragment(snapshot game.Snapshot) viewmodel.PlayersFragment {
	players := make([]viewmodel.PlayerEntry, 0, len(snapshot.Players))
	for _, p := range snapshot.Players {
		players = append(players, viewmodel.PlayerEntry{
			Index:     p.Index,
			Name:      p.Name,
			Position:  p.Position,
			SkipTurns: p.SkipTurns,
			InPrison:  p.InPrison,
			Current:   p.Current && snapshot.Status == game.StatusInProgress,
		})
	}
	return viewmodel.PlayersFragment{
		GameID:      snapshot.ID,
		Players:     players,
		Status:      snapshot.Status,
		CurrentName: snapshot.CurrentName,
		WinnerName:  snapshot.WinnerName,
	}
}

func buildLogFragment(snapshot game.Snapshot) viewmodel.LogFragment {
	return viewmodel.LogFragment{Lines: snapshot.Log, LastEvents: snapshot.LastEvents}
}

type playerJSON struct {
	Name        string `json:"name"`
	Position    int    `json:"position"`
	SkipTurns   int    `json:"skipTurns"`
	InPrison    bool   `json:"inPrison"`
	IsFirstTurn bool   `json:"isFirstTurn"`
}

type stateJSON struct {
	ID           string       `json:"id"`
	Status       string       `json:"status"`
	CurrentIndex int          `json:"currentIndex"`
	Winner       string       `json:"winner,omitempty"`
	Players      []playerJSON `json:"players"`
	LastEvents   []string     `json:"lastEvents"`
}

func toStateJSON(snapshot game.Snapshot) stateJSON {
	players := make([]playerJSON, 0, len(snapshot.Players))
	for _, p := range snapshot.Players {
		players = append(players, playerJSON{
			Name:        p.Name,
			Position:    p.Position,
			SkipTurns:   p.SkipTurns,
			InPrison:    p.InPrison,
			IsFirstTurn: p.IsFirstTurn,
		})
	}
	return stateJSON{
		ID:           snapshot.ID,
		Status:       snapshot.Status,
		CurrentIndex: snapshot.CurrentIndex,
		Winner:       snapshot.WinnerName,
		Players:      players,
		LastEvents:   snapshot.LastEvents,
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSSE(w http.ResponseWriter, event string, data string) {
	_, _ = w.Write([]byte("event: " + event + "\n"))
	for _, line := range strings.Split(data, "\n") {
		_, _ = w.Write([]byte("data: " + line + "\n"))
	}
	_, _ = w.Write([]byte("\n"))
}
