package arcade

import (
	"sync"
	"time"

	"oiesnake/internal/arcade/viewmodel"
	"oiesnake/internal/snake"
	"oiesnake/pkg/realtime"
)

// Room runs one snake engine on a fixed tick schedule.
type Room struct {
	mu        sync.Mutex
	ID        string
	CreatedAt time.Time
	engine    *snake.Engine
	ticker    realtime.Ticker
	last      snake.TickOutcome
}

// NewRoom wraps engine; it does not tick until Start.
func NewRoom(id string, engine *snake.Engine, interval time.Duration) *Room {
	return &Room{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		engine:    engine,
		ticker:    realtime.Ticker{Interval: interval},
	}
}

// Start schedules the first tick one interval after now.
func (r *Room) Start(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticker.Start(now)
}

// Stop freezes the snake where it is.
func (r *Room) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticker.Stop()
}

// Running reports whether the room is ticking.
func (r *Room) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticker.Running()
}

// NextTimer returns when the next tick is due.
func (r *Room) NextTimer(now time.Time) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticker.NextWake(now)
}

// AdvanceIfNeeded runs every tick due by now and returns how many ran.
func (r *Room) AdvanceIfNeeded(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	due := r.ticker.Due(now)
	for i := 0; i < due; i++ {
		r.last = r.engine.Tick()
	}
	return due
}

// SetDirection queues a heading change for the next tick.
func (r *Room) SetDirection(d snake.Direction) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.SetDirection(d)
}

// Frame returns a consistent view of the engine.
func (r *Room) Frame() viewmodel.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	cols, rows := r.engine.Grid()
	cells := r.engine.BodyCells()
	body := make([]viewmodel.Point, 0, len(cells))
	for _, c := range cells {
		body = append(body, toPoint(c))
	}
	return viewmodel.Frame{
		ID:        r.ID,
		Cols:      cols,
		Rows:      rows,
		Body:      body,
		Head:      toPoint(r.engine.Head()),
		Food:      toPoint(r.engine.FoodCell()),
		Direction: r.engine.Direction().String(),
		Score:     r.engine.Score(),
		Ticks:     r.engine.Ticks(),
		Resets:    r.engine.Resets(),
		Running:   r.ticker.Running(),
		Grew:      r.last.Grew,
		Reset:     r.last.Reset,
	}
}

func toPoint(c snake.Cell) viewmodel.Point {
	return viewmodel.Point{X: c.X, Y: c.Y}
}
