package goose

import (
	"fmt"
	"strings"
)

// Player is one token on the board.
type Player struct {
	Name        string
	Position    int
	SkipTurns   int
	InPrison    bool
	IsFirstTurn bool
}

// ValidationError reports setup input the engine refuses to start with.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid game setup: " + e.Reason
}

func newPlayer(name string) Player {
	return Player{Name: name, Position: StartSquare, IsFirstTurn: true}
}

// CreatePlayers trims names, drops blank entries and returns fresh players in
// the given order. At least MinPlayers non-empty names are required.
func CreatePlayers(names []string) ([]Player, error) {
	players := make([]Player, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		players = append(players, newPlayer(name))
	}
	if len(players) < MinPlayers {
		return nil, &ValidationError{
			Reason: fmt.Sprintf("at least %d players are required, got %d", MinPlayers, len(players)),
		}
	}
	return players, nil
}
