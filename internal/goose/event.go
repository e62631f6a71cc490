package goose

import "fmt"

// EventKind identifies what happened during a turn.
type EventKind int

const (
	EventTurnSkipped EventKind = iota + 1
	EventDiceRolled
	EventPrisonEscaped
	EventPrisonRemains
	EventFirstTurnSpecial
	EventOvershoot
	EventGooseBonus
	EventBridge
	EventWell
	EventLabyrinth
	EventSkull
	EventHotelStay
	EventImprisoned
	EventCollisionSwap
	EventVictory
)

func (k EventKind) String() string {
	switch k {
	case EventTurnSkipped:
		return "TurnSkipped"
	case EventDiceRolled:
		return "DiceRolled"
	case EventPrisonEscaped:
		return "PrisonEscaped"
	case EventPrisonRemains:
		return "PrisonRemains"
	case EventFirstTurnSpecial:
		return "FirstTurnSpecial"
	case EventOvershoot:
		return "Overshoot"
	case EventGooseBonus:
		return "GooseBonus"
	case EventBridge:
		return "Bridge"
	case EventWell:
		return "Well"
	case EventLabyrinth:
		return "Labyrinth"
	case EventSkull:
		return "Skull"
	case EventHotelStay:
		return "HotelStay"
	case EventImprisoned:
		return "Imprisoned"
	case EventCollisionSwap:
		return "CollisionSwap"
	case EventVictory:
		return "Victory"
	default:
		return "Unknown"
	}
}

// Event is one step of a turn, in the order it happened. Only the fields
// relevant to Kind are set.
type Event struct {
	Kind    EventKind
	Player  string
	Dice    [2]int
	Total   int
	Steps   int
	Surplus int
	Square  int
	Other   string
}

// Message renders the event as a log line.
func (e Event) Message() string {
	switch e.Kind {
	case EventTurnSkipped:
		return fmt.Sprintf("%s skips this turn.", e.Player)
	case EventDiceRolled:
		return fmt.Sprintf("%s rolls %d and %d (total = %d).", e.Player, e.Dice[0], e.Dice[1], e.Total)
	case EventPrisonEscaped:
		return fmt.Sprintf("%s rolled a double and is released from prison!", e.Player)
	case EventPrisonRemains:
		return fmt.Sprintf("%s did not roll a double and stays in prison.", e.Player)
	case EventFirstTurnSpecial:
		return fmt.Sprintf("%s rolled %d+%d on the first turn and goes straight to square %d.", e.Player, e.Dice[0], e.Dice[1], e.Square)
	case EventOvershoot:
		return fmt.Sprintf("%s went past the final square and moves back %d square(s).", e.Player, e.Surplus)
	case EventGooseBonus:
		return fmt.Sprintf("%s lands on a goose and moves %d more square(s)!", e.Player, e.Steps)
	case EventBridge:
		return fmt.Sprintf("%s crosses the bridge to square %d.", e.Player, e.Square)
	case EventWell:
		return fmt.Sprintf("%s falls in the well and goes back to square %d.", e.Player, e.Square)
	case EventLabyrinth:
		return fmt.Sprintf("%s is lost in the labyrinth and goes back to square %d.", e.Player, e.Square)
	case EventSkull:
		return fmt.Sprintf("Oh no! %s lands on the skull and returns to square %d.", e.Player, e.Square)
	case EventHotelStay:
		return fmt.Sprintf("%s stays at the hotel and will miss %d turns.", e.Player, HotelSkipTurns)
	case EventImprisoned:
		return fmt.Sprintf("%s is in prison and needs a double to get out.", e.Player)
	case EventCollisionSwap:
		return fmt.Sprintf("%s lands on %s, who goes back to square %d.", e.Player, e.Other, e.Square)
	case EventVictory:
		return fmt.Sprintf("Congratulations! %s wins the game!", e.Player)
	default:
		return e.Kind.String()
	}
}

func teleportEvent(kind EffectKind) EventKind {
	switch kind {
	case EffectBridge:
		return EventBridge
	case EffectWell:
		return EventWell
	case EffectLabyrinth:
		return EventLabyrinth
	case EffectSkull:
		return EventSkull
	default:
		return 0
	}
}
