package snake

import (
	"errors"
	"time"

	"golang.org/x/exp/rand"
)

// ErrGridFull is the panic value when no free cell is left for food.
var ErrGridFull = errors.New("snake fills the whole grid")

// IntnSource is satisfied by *rand.Rand and the shared process source.
type IntnSource interface {
	Intn(n int) int
}

// TickOutcome reports what a tick did.
type TickOutcome struct {
	Grew  bool
	Reset bool
}

// Engine owns the snake body, its heading and the food cell.
// It is not safe for concurrent use.
type Engine struct {
	cols, rows int
	body       []Cell // tail first, head last
	direction  Direction
	moved      Direction // heading of the last step taken
	food       Cell
	src        IntnSource

	score  int
	ticks  int
	resets int
}

// Option configures an Engine.
type Option func(*Engine)

// WithGrid sets the grid size. Grids too small for the default body are ignored.
func WithGrid(cols, rows int) Option {
	return func(e *Engine) {
		if cols < MinCols || rows < MinRows {
			return
		}
		e.cols, e.rows = cols, rows
	}
}

// WithSource sets the random source used to place food.
func WithSource(src IntnSource) Option {
	return func(e *Engine) {
		e.src = src
	}
}

// New returns an engine with the default snake and food placed off its body.
func New(opts ...Option) *Engine {
	e := &Engine{cols: DefaultCols, rows: DefaultRows}
	for _, opt := range opts {
		opt(e)
	}
	if e.src == nil {
		e.src = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	e.resetSnake()
	e.placeFood()
	return e
}

func defaultBody() []Cell {
	return []Cell{{X: 2, Y: 6}, {X: 3, Y: 6}, {X: 4, Y: 6}}
}

func (e *Engine) resetSnake() {
	e.body = defaultBody()
	e.direction = Right
	e.moved = Right
	e.score = 0
}

// Tick advances the snake one cell in its current direction.
func (e *Engine) Tick() TickOutcome {
	e.ticks++
	var out TickOutcome

	head := e.Head().Add(e.direction)
	e.moved = e.direction
	e.body = append(e.body, head)

	if head == e.food {
		out.Grew = true
		e.score++
		e.placeFood()
	} else {
		e.body = e.body[1:]
	}

	if e.outOfBounds(head) || e.hitsBody(head) {
		e.resetSnake()
		e.resets++
		out.Reset = true
		if e.occupied(e.food) {
			e.placeFood()
		}
	}
	return out
}

// SetDirection changes the heading unless requested is the exact opposite
// of the current one. Several requests between two ticks can not add up to
// a reversal either: the heading of the last step is checked too.
func (e *Engine) SetDirection(requested Direction) bool {
	if !requested.Valid() || requested == e.direction.Opposite() || requested == e.moved.Opposite() {
		return false
	}
	e.direction = requested
	return true
}

// BodyCells returns a copy of the body, tail first and head last.
func (e *Engine) BodyCells() []Cell {
	out := make([]Cell, len(e.body))
	copy(out, e.body)
	return out
}

func (e *Engine) FoodCell() Cell {
	return e.food
}

func (e *Engine) Head() Cell {
	return e.body[len(e.body)-1]
}

func (e *Engine) Direction() Direction {
	return e.direction
}

// Grid returns the number of columns and rows.
func (e *Engine) Grid() (int, int) {
	return e.cols, e.rows
}

// Score is the food eaten since the last reset.
func (e *Engine) Score() int {
	return e.score
}

func (e *Engine) Ticks() int {
	return e.ticks
}

func (e *Engine) Resets() int {
	return e.resets
}

func (e *Engine) outOfBounds(c Cell) bool {
	return c.X < 0 || c.X >= e.cols || c.Y < 0 || c.Y >= e.rows
}

// hitsBody reports whether the head shares a cell with another segment.
func (e *Engine) hitsBody(head Cell) bool {
	for _, part := range e.body[:len(e.body)-1] {
		if part == head {
			return true
		}
	}
	return false
}

func (e *Engine) occupied(c Cell) bool {
	for _, part := range e.body {
		if part == c {
			return true
		}
	}
	return false
}

// placeFood draws cells until one is free of the body.
func (e *Engine) placeFood() {
	if len(e.body) >= e.cols*e.rows {
		panic(ErrGridFull)
	}
	for {
		food := Cell{X: e.src.Intn(e.cols), Y: e.src.Intn(e.rows)}
		if !e.occupied(food) {
			e.food = food
			return
		}
	}
}
