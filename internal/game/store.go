package game

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"oiesnake/internal/goose"
	"oiesnake/pkg/realtime"
)

// Store holds goose games and delegates to realtime.RoomStore for lookup and broadcast.
type Store struct {
	r   *realtime.RoomStore[*Game]
	src goose.IntnSource
}

// NewStore creates an in-memory game store. Every game rolls its dice from src.
func NewStore(src goose.IntnSource) *Store {
	return &Store{r: realtime.NewRoomStore[*Game](), src: src}
}

// CreateGame validates names and registers a new game with its broadcaster.
func (s *Store) CreateGame(names []string) (*Game, error) {
	g, err := NewGame(names, goose.NewRandomDice(s.src))
	if err != nil {
		return nil, err
	}
	s.r.Create(g.ID, g)
	log.WithFields(log.Fields{"game": g.ID, "players": len(names)}).Info("goose game created")
	return g, nil
}

// GetGame returns a game by ID if it exists.
func (s *Store) GetGame(id string) (*Game, bool) {
	room, ok := s.r.Get(id)
	if !ok {
		return nil, false
	}
	return room.State, true
}

// Broadcaster returns the SSE broadcaster for a game.
func (s *Store) Broadcaster(id string) (*realtime.Broadcaster, bool) {
	return s.r.Broadcaster(id)
}

// Publish notifies subscribers of a game update with a typed event.
func (s *Store) Publish(id string, events ...string) {
	for _, event := range events {
		s.r.Publish(id, event)
	}
}

// Len returns the number of games.
func (s *Store) Len() int {
	return s.r.Len()
}

func newID() string {
	return uuid.NewString()
}
