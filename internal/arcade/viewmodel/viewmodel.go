// Package viewmodel defines the view-layer types for the snake arcade.
// They carry no engine imports so pages and the socket share one shape.
package viewmodel

// Point is a grid cell.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Frame is the state pushed to clients after every tick.
type Frame struct {
	ID        string  `json:"id"`
	Cols      int     `json:"cols"`
	Rows      int     `json:"rows"`
	Body      []Point `json:"body"` // tail first
	Head      Point   `json:"head"`
	Food      Point   `json:"food"`
	Direction string  `json:"direction"`
	Score     int     `json:"score"`
	Ticks     int     `json:"ticks"`
	Resets    int     `json:"resets"`
	Running   bool    `json:"running"`
	Grew      bool    `json:"grew"`
	Reset     bool    `json:"reset"`
}

// RoomPage carries everything the snake page needs.
type RoomPage struct {
	Title     string
	RoomID    string
	InviteURL string
	Frame     Frame
}
