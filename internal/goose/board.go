// Package goose implements the rules of the goose game ("Jeu de l'Oie"):
// dice rolls, special squares, token swapping and win detection.
//
// A Session owns every player and the turn pointer. It is not safe for
// concurrent use; callers serialise turns.
package goose

const (
	StartSquare    = 0
	FinalSquare    = 63
	MinPlayers     = 2
	HotelSkipTurns = 2
	DieFaces       = 6
)

// EffectKind names what a special square does to the token that lands on it.
type EffectKind int

const (
	EffectGoose EffectKind = iota + 1
	EffectBridge
	EffectHotel
	EffectWell
	EffectLabyrinth
	EffectPrison
	EffectSkull
	EffectFinal
)

func (k EffectKind) String() string {
	switch k {
	case EffectGoose:
		return "Goose"
	case EffectBridge:
		return "Bridge"
	case EffectHotel:
		return "Hotel"
	case EffectWell:
		return "Well"
	case EffectLabyrinth:
		return "Labyrinth"
	case EffectPrison:
		return "Prison"
	case EffectSkull:
		return "Skull"
	case EffectFinal:
		return "Final"
	default:
		return "Unknown"
	}
}

// SpecialEffect is the rule attached to a board square. Target is only
// meaningful when HasTarget is set.
type SpecialEffect struct {
	Kind      EffectKind
	Target    int
	HasTarget bool
}

func goose() SpecialEffect { return SpecialEffect{Kind: EffectGoose} }

func teleport(kind EffectKind, target int) SpecialEffect {
	return SpecialEffect{Kind: kind, Target: target, HasTarget: true}
}

var board = map[int]SpecialEffect{
	6:  teleport(EffectBridge, 12),
	9:  goose(),
	18: goose(),
	27: goose(),
	36: goose(),
	45: goose(),
	54: goose(),
	19: {Kind: EffectHotel},
	31: teleport(EffectWell, 20),
	42: teleport(EffectLabyrinth, 30),
	52: {Kind: EffectPrison},
	58: teleport(EffectSkull, StartSquare),
	63: {Kind: EffectFinal},
}

// SpecialEffectAt reports the effect of square, if any. The start square and
// plain squares have none.
func SpecialEffectAt(square int) (SpecialEffect, bool) {
	effect, ok := board[square]
	return effect, ok
}

// SpecialSquares returns the squares carrying an effect, in ascending order.
func SpecialSquares() []int {
	squares := make([]int, 0, len(board))
	for sq := 1; sq <= FinalSquare; sq++ {
		if _, ok := board[sq]; ok {
			squares = append(squares, sq)
		}
	}
	return squares
}

// first-turn rolls that jump straight to a square, keyed by the lower die.
var firstTurnJumps = map[[2]int]int{
	{3, 6}: 26,
	{4, 5}: 53,
}

func firstTurnJump(d1, d2 int) (int, bool) {
	if d1 > d2 {
		d1, d2 = d2, d1
	}
	square, ok := firstTurnJumps[[2]int{d1, d2}]
	return square, ok
}
