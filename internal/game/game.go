package game

import (
	"sync"
	"time"

	"oiesnake/internal/goose"
)

const (
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)

// Game wraps a goose session so handlers can share it across requests.
type Game struct {
	mu         sync.Mutex
	ID         string
	CreatedAt  time.Time
	session    *goose.Session
	lastEvents []goose.Event
}

// NewGame creates a game for names. Setup errors are *goose.ValidationError.
func NewGame(names []string, dice goose.Roller) (*Game, error) {
	session, err := goose.NewSession(names, goose.WithDice(dice))
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:        newID(),
		CreatedAt: time.Now().UTC(),
		session:   session,
	}, nil
}

// Roll plays one turn. A negative playerIndex means the current player.
func (g *Game) Roll(playerIndex int) ([]goose.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if playerIndex < 0 {
		playerIndex = g.session.CurrentPlayerIndex()
	}
	events, err := g.session.TakeTurn(playerIndex)
	if err != nil {
		return nil, err
	}
	g.lastEvents = events
	return events, nil
}

// Restart starts a new game with the same players.
func (g *Game) Restart() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session.Restart()
	g.lastEvents = nil
}

// IsOver reports whether someone has won.
func (g *Game) IsOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session.IsGameOver()
}

// PlayerState is one player as seen by the presentation layer.
type PlayerState struct {
	Index       int
	Name        string
	Position    int
	SkipTurns   int
	InPrison    bool
	IsFirstTurn bool
	Current     bool
}

// Snapshot captures the state needed for rendering UI fragments.
type Snapshot struct {
	ID           string
	Status       string
	Players      []PlayerState
	CurrentIndex int
	CurrentName  string
	WinnerName   string
	Log          []string
	LastEvents   []string
}

// Snapshot returns a consistent view of the current game state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	current := g.session.CurrentPlayerIndex()
	players := g.session.Players()
	states := make([]PlayerState, 0, len(players))
	for i, p := range players {
		states = append(states, PlayerState{
			Index:       i,
			Name:        p.Name,
			Position:    p.Position,
			SkipTurns:   p.SkipTurns,
			InPrison:    p.InPrison,
			IsFirstTurn: p.IsFirstTurn,
			Current:     i == current,
		})
	}
	status := StatusInProgress
	winnerName := ""
	if winner, ok := g.session.Winner(); ok {
		status = StatusFinished
		winnerName = winner.Name
	}
	last := make([]string, 0, len(g.lastEvents))
	for _, e := range g.lastEvents {
		last = append(last, e.Message())
	}
	return Snapshot{
		ID:           g.ID,
		Status:       status,
		Players:      states,
		CurrentIndex: current,
		CurrentName:  players[current].Name,
		WinnerName:   winnerName,
		Log:          g.session.Log(),
		LastEvents:   last,
	}
}
