package arcade

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"oiesnake/internal/snake"
	"oiesnake/pkg/realtime"
)

// FrameEvent is published after every batch of ticks and on stop.
const FrameEvent = "frame"

// Store holds snake rooms and runs one tick loop per room. A room nobody
// has watched for the idle timeout is deleted.
type Store struct {
	r          *realtime.RoomStore[*Room]
	src        snake.IntnSource
	tick       time.Duration
	idle       time.Duration
	cols, rows int
}

// NewStore creates a store whose rooms tick every tick on a cols x rows grid
// and place food from src. Rooms without subscribers for idle are dropped.
func NewStore(src snake.IntnSource, tick, idle time.Duration, cols, rows int) *Store {
	return &Store{
		r:    realtime.NewRoomStore[*Room](),
		src:  src,
		tick: tick,
		idle: idle,
		cols: cols,
		rows: rows,
	}
}

// CreateRoom registers a new room and starts its loop.
func (s *Store) CreateRoom() *Room {
	engine := snake.New(snake.WithGrid(s.cols, s.rows), snake.WithSource(s.src))
	room := NewRoom(uuid.NewString(), engine, s.tick)
	s.r.Create(room.ID, room)
	room.Start(time.Now().UTC())
	s.EnsureLoop(room.ID)
	cols, rows := engine.Grid()
	log.WithFields(log.Fields{"room": room.ID, "cols": cols, "rows": rows, "tick": s.tick}).Info("snake room created")
	return room
}

// GetRoom returns a room by ID if it exists.
func (s *Store) GetRoom(id string) (*Room, bool) {
	room, ok := s.r.Get(id)
	if !ok {
		return nil, false
	}
	return room.State, true
}

// Broadcaster returns the room's frame broadcaster.
func (s *Store) Broadcaster(id string) (*realtime.Broadcaster, bool) {
	return s.r.Broadcaster(id)
}

// Publish notifies subscribers of the room.
func (s *Store) Publish(id string, event string) {
	s.r.Publish(id, event)
}

// EnsureLoop starts the room's loop unless one is running. The loop ticks the
// room while it runs; once stopped it only wakes to check for viewers.
func (s *Store) EnsureLoop(id string) {
	var idleSince time.Time
	getState := func() *Room {
		room, ok := s.r.Get(id)
		if !ok {
			return nil
		}
		return room.State
	}
	tick := func(state *Room, now time.Time) (time.Time, []string, bool) {
		if state == nil {
			return time.Time{}, nil, true
		}
		hub, ok := s.r.Broadcaster(id)
		if !ok {
			return time.Time{}, nil, true
		}
		if hub.Len() > 0 {
			idleSince = time.Time{}
		} else if idleSince.IsZero() {
			idleSince = now
		} else if s.idle > 0 && now.Sub(idleSince) >= s.idle {
			log.WithFields(log.Fields{"room": id, "idle": now.Sub(idleSince)}).Info("snake room expired")
			s.Delete(id)
			return time.Time{}, nil, true
		}

		var events []string
		if state.AdvanceIfNeeded(now) > 0 {
			events = []string{FrameEvent}
		}
		next, ok := state.NextTimer(now)
		if !ok {
			if s.idle <= 0 {
				return time.Time{}, events, true
			}
			next = now.Add(s.idle)
		}
		return next, events, false
	}
	s.r.RunLoop(id, getState, tick)
}

// Running reports whether the room's loop is active.
func (s *Store) Running(id string) bool {
	return s.r.Running(id)
}

// Stop halts the room's ticks and tells subscribers about it. The loop stays
// up so the room still expires once nobody watches it.
func (s *Store) Stop(id string) bool {
	room, ok := s.GetRoom(id)
	if !ok {
		return false
	}
	room.Stop()
	s.r.Wake(id)
	s.Publish(id, FrameEvent)
	log.WithField("room", id).Info("snake room stopped")
	return true
}

// Delete stops the room and drops it with its subscribers.
func (s *Store) Delete(id string) {
	if room, ok := s.GetRoom(id); ok {
		room.Stop()
	}
	s.r.Delete(id)
}

// Len returns the number of rooms.
func (s *Store) Len() int {
	return s.r.Len()
}
