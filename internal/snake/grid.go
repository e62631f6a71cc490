// Package snake implements the grid logic of the Snake arcade game: movement,
// growth on food, wall and self collision with restart in place.
package snake

import "strings"

const (
	DefaultCols = 10
	DefaultRows = 15

	// MinCols and MinRows fit the starting body with room to move.
	MinCols = 5
	MinRows = 7
)

// Cell is a grid coordinate. X grows to the right, Y grows downwards.
type Cell struct {
	X, Y int
}

// Add returns c moved by d's unit vector.
func (c Cell) Add(d Direction) Cell {
	dx, dy := d.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Direction is a heading on the grid.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Delta returns the unit vector of d.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the heading pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) Valid() bool {
	return d >= Up && d <= Left
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// ParseDirection accepts "up", "right", "down", "left" in any case.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, true
	case "right":
		return Right, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	default:
		return 0, false
	}
}
