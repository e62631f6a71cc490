package goose

import (
	"errors"
	"time"

	"golang.org/x/exp/rand"
)

const maxLogLines = 100

var (
	// ErrGameOver is returned when a turn is requested after a victory.
	ErrGameOver = errors.New("game is over")
	// ErrOutOfTurn is returned when a player other than the current one rolls.
	ErrOutOfTurn = errors.New("not this player's turn")
	// ErrUnknownPlayer is returned for a player index outside the session.
	ErrUnknownPlayer = errors.New("unknown player")
)

// Session holds the players, the turn pointer and the turn log of one game.
type Session struct {
	players []Player
	current int
	over    bool
	winner  int
	dice    Roller
	log     []string
}

// Option configures a Session.
type Option func(*Session)

// WithDice replaces the dice used for every roll.
func WithDice(dice Roller) Option {
	return func(s *Session) {
		s.dice = dice
	}
}

// NewSession creates a game for names in turn order.
func NewSession(names []string, opts ...Option) (*Session, error) {
	players, err := CreatePlayers(names)
	if err != nil {
		return nil, err
	}
	s := &Session{
		players: players,
		winner:  -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dice == nil {
		s.dice = NewRandomDice(rand.New(rand.NewSource(uint64(time.Now().UnixNano()))))
	}
	return s, nil
}

// Restart puts every player back on the start square, keeping names and turn
// order, and clears the winner and the log.
func (s *Session) Restart() {
	for i := range s.players {
		s.players[i] = newPlayer(s.players[i].Name)
	}
	s.current = 0
	s.over = false
	s.winner = -1
	s.log = nil
}

// IsGameOver reports whether a player has reached the final square.
func (s *Session) IsGameOver() bool {
	return s.over
}

// Winner returns the player who reached the final square, if any.
func (s *Session) Winner() (Player, bool) {
	if s.winner < 0 {
		return Player{}, false
	}
	return s.players[s.winner], true
}

// CurrentPlayerIndex returns the index of the player whose turn it is.
func (s *Session) CurrentPlayerIndex() int {
	return s.current
}

// Players returns a copy of the players in turn order.
func (s *Session) Players() []Player {
	out := make([]Player, len(s.players))
	copy(out, s.players)
	return out
}

// Player returns the player at index i.
func (s *Session) Player(i int) (Player, bool) {
	if i < 0 || i >= len(s.players) {
		return Player{}, false
	}
	return s.players[i], true
}

// Log returns the most recent turn log lines, oldest first.
func (s *Session) Log() []string {
	out := make([]string, len(s.log))
	copy(out, s.log)
	return out
}

// Roll plays the current player's turn.
func (s *Session) Roll() ([]Event, error) {
	return s.TakeTurn(s.current)
}

// TakeTurn plays one full turn for the player at playerIndex, which must be
// the current player. The turn pointer always moves on to the next player,
// including after skipped, imprisoned and winning turns.
func (s *Session) TakeTurn(playerIndex int) ([]Event, error) {
	if s.over {
		return nil, ErrGameOver
	}
	if playerIndex < 0 || playerIndex >= len(s.players) {
		return nil, ErrUnknownPlayer
	}
	if playerIndex != s.current {
		return nil, ErrOutOfTurn
	}

	events := s.turn(playerIndex)
	s.current = (s.current + 1) % len(s.players)
	s.record(events)
	return events, nil
}

func (s *Session) turn(idx int) []Event {
	p := &s.players[idx]

	// a pending skip is served before prison is considered
	if p.SkipTurns > 0 {
		p.SkipTurns--
		return []Event{{Kind: EventTurnSkipped, Player: p.Name}}
	}

	d1, d2 := s.dice.Roll()
	total := d1 + d2
	events := []Event{{Kind: EventDiceRolled, Player: p.Name, Dice: [2]int{d1, d2}, Total: total}}

	if p.InPrison {
		if d1 != d2 {
			return append(events, Event{Kind: EventPrisonRemains, Player: p.Name})
		}
		p.InPrison = false
		events = append(events, Event{Kind: EventPrisonEscaped, Player: p.Name})
		events = append(events, s.move(idx, total)...)
		return append(events, s.checkWin(idx)...)
	}

	if p.IsFirstTurn {
		if square, ok := firstTurnJump(d1, d2); ok {
			oldPos := p.Position
			p.Position = square
			p.IsFirstTurn = false
			events = append(events, Event{
				Kind:   EventFirstTurnSpecial,
				Player: p.Name,
				Dice:   [2]int{d1, d2},
				Square: square,
			})
			events = append(events, s.resolveCollisions(idx, oldPos)...)
			return append(events, s.checkWin(idx)...)
		}
	}

	events = append(events, s.move(idx, total)...)
	return append(events, s.checkWin(idx)...)
}

// move advances the player by steps, bouncing off the final square, applies
// the effect of the landing square once and swaps any token found there.
func (s *Session) move(idx, steps int) []Event {
	p := &s.players[idx]
	oldPos := p.Position
	p.IsFirstTurn = false

	var events []Event
	pos, surplus := bounce(p.Position + steps)
	if surplus > 0 {
		events = append(events, Event{Kind: EventOvershoot, Player: p.Name, Surplus: surplus})
	}
	p.Position = pos

	if effect, ok := SpecialEffectAt(pos); ok {
		events = append(events, s.applyEffect(p, effect, steps)...)
	}
	return append(events, s.resolveCollisions(idx, oldPos)...)
}

func (s *Session) applyEffect(p *Player, effect SpecialEffect, steps int) []Event {
	switch effect.Kind {
	case EffectGoose:
		// single extra hop; the square reached is not resolved again
		events := []Event{{Kind: EventGooseBonus, Player: p.Name, Steps: steps}}
		pos, surplus := bounce(p.Position + steps)
		if surplus > 0 {
			events = append(events, Event{Kind: EventOvershoot, Player: p.Name, Surplus: surplus})
		}
		p.Position = pos
		return events
	case EffectBridge, EffectWell, EffectLabyrinth, EffectSkull:
		p.Position = effect.Target
		return []Event{{Kind: teleportEvent(effect.Kind), Player: p.Name, Square: effect.Target}}
	case EffectHotel:
		p.SkipTurns = HotelSkipTurns
		return []Event{{Kind: EventHotelStay, Player: p.Name}}
	case EffectPrison:
		p.InPrison = true
		return []Event{{Kind: EventImprisoned, Player: p.Name}}
	case EffectFinal:
		return nil
	default:
		return nil
	}
}

// resolveCollisions sends every other token sharing the mover's square back
// to oldPos.
func (s *Session) resolveCollisions(idx, oldPos int) []Event {
	mover := s.players[idx]
	if mover.Position == oldPos {
		return nil
	}
	var events []Event
	for i := range s.players {
		if i == idx || s.players[i].Position != mover.Position {
			continue
		}
		s.players[i].Position = oldPos
		events = append(events, Event{
			Kind:   EventCollisionSwap,
			Player: mover.Name,
			Other:  s.players[i].Name,
			Square: oldPos,
		})
	}
	return events
}

func (s *Session) checkWin(idx int) []Event {
	if s.players[idx].Position != FinalSquare {
		return nil
	}
	s.over = true
	s.winner = idx
	return []Event{{Kind: EventVictory, Player: s.players[idx].Name}}
}

func (s *Session) record(events []Event) {
	for _, e := range events {
		s.log = append(s.log, e.Message())
	}
	if len(s.log) > maxLogLines {
		s.log = s.log[len(s.log)-maxLogLines:]
	}
}

// bounce folds a raw target past the final square back by the excess.
func bounce(pos int) (int, int) {
	if pos <= FinalSquare {
		return pos, 0
	}
	surplus := pos - FinalSquare
	pos = FinalSquare - surplus
	if pos < StartSquare {
		pos = StartSquare
	}
	return pos, surplus
}
