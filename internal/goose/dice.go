package goose

// Roller throws the two dice of a turn.
type Roller interface {
	Roll() (int, int)
}

// IntnSource is satisfied by *rand.Rand and the shared process source.
type IntnSource interface {
	Intn(n int) int
}

// RandomDice rolls two fair six-sided dice.
type RandomDice struct {
	src IntnSource
}

func NewRandomDice(src IntnSource) *RandomDice {
	return &RandomDice{src: src}
}

func (d *RandomDice) Roll() (int, int) {
	return 1 + d.src.Intn(DieFaces), 1 + d.src.Intn(DieFaces)
}

// ScriptedDice replays a fixed sequence of rolls, wrapping around at the end.
type ScriptedDice struct {
	rolls [][2]int
	next  int
}

func NewScriptedDice(rolls ...[2]int) *ScriptedDice {
	return &ScriptedDice{rolls: rolls}
}

func (d *ScriptedDice) Roll() (int, int) {
	if len(d.rolls) == 0 {
		return 1, 1
	}
	r := d.rolls[d.next%len(d.rolls)]
	d.next++
	return r[0], r[1]
}
