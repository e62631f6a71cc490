package snake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// seqSource returns its values in order, wrapping around.
type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func newSeq(vals ...int) *seqSource {
	return &seqSource{vals: vals}
}

func TestNew_Defaults(t *testing.T) {
	e := New(WithSource(newSeq(0, 0)))

	assert.Equal(t, []Cell{{2, 6}, {3, 6}, {4, 6}}, e.BodyCells())
	assert.Equal(t, Cell{4, 6}, e.Head())
	assert.Equal(t, Right, e.Direction())
	assert.Equal(t, Cell{0, 0}, e.FoodCell())
	cols, rows := e.Grid()
	assert.Equal(t, DefaultCols, cols)
	assert.Equal(t, DefaultRows, rows)
}

func TestNew_FoodAvoidsBody(t *testing.T) {
	e := New(WithSource(newSeq(3, 6, 2, 6, 7, 8)))
	assert.Equal(t, Cell{7, 8}, e.FoodCell())
}

func TestWithGrid_IgnoresTinyGrid(t *testing.T) {
	e := New(WithGrid(3, 3), WithSource(newSeq(0, 0)))
	cols, rows := e.Grid()
	assert.Equal(t, DefaultCols, cols)
	assert.Equal(t, DefaultRows, rows)

	e = New(WithGrid(20, 30), WithSource(newSeq(0, 0)))
	cols, rows = e.Grid()
	assert.Equal(t, 20, cols)
	assert.Equal(t, 30, rows)
}

func TestTick_Translates(t *testing.T) {
	e := New(WithSource(newSeq(0, 0)))

	out := e.Tick()

	assert.Equal(t, TickOutcome{}, out)
	assert.Equal(t, []Cell{{3, 6}, {4, 6}, {5, 6}}, e.BodyCells())
	assert.Equal(t, 1, e.Ticks())
}

func TestTick_GrowsOnFood(t *testing.T) {
	e := New(WithSource(newSeq(5, 6, 0, 0)))
	require.Equal(t, Cell{5, 6}, e.FoodCell())

	out := e.Tick()

	assert.True(t, out.Grew)
	assert.False(t, out.Reset)
	assert.Equal(t, []Cell{{2, 6}, {3, 6}, {4, 6}, {5, 6}}, e.BodyCells())
	assert.Equal(t, Cell{0, 0}, e.FoodCell())
	assert.Equal(t, 1, e.Score())
}

func TestTick_FoodRespawnRetriesUntilFree(t *testing.T) {
	e := New(WithSource(newSeq(5, 6, 3, 6, 5, 6, 9, 9)))

	out := e.Tick()

	require.True(t, out.Grew)
	assert.Equal(t, Cell{9, 9}, e.FoodCell())
}

func TestTick_WallResets(t *testing.T) {
	e := New(WithSource(newSeq(0, 0)))
	for i := 0; i < 5; i++ {
		out := e.Tick()
		require.False(t, out.Reset, "tick %d", i)
	}
	assert.Equal(t, Cell{9, 6}, e.Head())

	out := e.Tick()

	assert.True(t, out.Reset)
	assert.Equal(t, []Cell{{2, 6}, {3, 6}, {4, 6}}, e.BodyCells())
	assert.Equal(t, Right, e.Direction())
	assert.Equal(t, 1, e.Resets())
}

func TestTick_TopWallResets(t *testing.T) {
	e := New(WithSource(newSeq(0, 14)))
	require.True(t, e.SetDirection(Up))
	for i := 0; i < 6; i++ {
		require.False(t, e.Tick().Reset)
	}
	assert.Equal(t, Cell{4, 0}, e.Head())
	assert.True(t, e.Tick().Reset)
}

func TestTick_SelfCollisionResets(t *testing.T) {
	e := New(WithSource(newSeq(0, 0)))
	e.body = []Cell{{2, 2}, {3, 2}, {4, 2}, {4, 3}, {3, 3}}
	e.direction = Left
	require.True(t, e.SetDirection(Up))

	out := e.Tick()

	assert.True(t, out.Reset)
	assert.Equal(t, []Cell{{2, 6}, {3, 6}, {4, 6}}, e.BodyCells())
}

func TestTick_FollowingTailIsSafe(t *testing.T) {
	e := New(WithSource(newSeq(0, 0)))
	e.body = []Cell{{2, 2}, {3, 2}, {3, 3}, {2, 3}}
	e.direction = Left
	require.True(t, e.SetDirection(Up))

	out := e.Tick()

	assert.False(t, out.Reset)
	assert.Equal(t, []Cell{{3, 2}, {3, 3}, {2, 3}, {2, 2}}, e.BodyCells())
}

func TestTick_ResetMovesFoodOffFreshBody(t *testing.T) {
	e := New(WithSource(newSeq(0, 0)))
	e.body = []Cell{{7, 1}, {8, 1}, {9, 1}}
	e.food = Cell{3, 6}

	out := e.Tick()

	require.True(t, out.Reset)
	assert.Equal(t, Cell{0, 0}, e.FoodCell())
}

func TestSetDirection(t *testing.T) {
	e := New(WithSource(newSeq(0, 0)))

	assert.False(t, e.SetDirection(Left))
	assert.Equal(t, Right, e.Direction())
	assert.True(t, e.SetDirection(Right))
	assert.True(t, e.SetDirection(Down))
	assert.Equal(t, Down, e.Direction())
	assert.False(t, e.SetDirection(Up))
	assert.False(t, e.SetDirection(Direction(9)))
	assert.Equal(t, Down, e.Direction())
}

func TestSetDirection_NoReversalBetweenTicks(t *testing.T) {
	e := New(WithSource(newSeq(0, 0)))

	require.True(t, e.SetDirection(Up))
	assert.False(t, e.SetDirection(Left))
	assert.Equal(t, Up, e.Direction())

	out := e.Tick()

	assert.False(t, out.Reset)
	assert.Equal(t, Cell{4, 5}, e.Head())
	assert.True(t, e.SetDirection(Left))
	assert.False(t, e.SetDirection(Down))
}

func TestPlaceFood_PanicsOnFullGrid(t *testing.T) {
	e := New(WithGrid(5, 7), WithSource(newSeq(0, 0)))
	var body []Cell
	for y := 0; y < 7; y++ {
		for x := 0; x < 5; x++ {
			body = append(body, Cell{x, y})
		}
	}
	e.body = body

	assert.PanicsWithValue(t, ErrGridFull, e.placeFood)
}

func TestTick_GrowthAndInvariants(t *testing.T) {
	src := rand.New(rand.NewSource(7))
	e := New(WithSource(src))
	dirs := []Direction{Up, Right, Down, Left}

	for i := 0; i < 3000; i++ {
		if i%4 == 0 {
			e.SetDirection(dirs[src.Intn(len(dirs))])
		}
		before := len(e.BodyCells())
		out := e.Tick()
		body := e.BodyCells()

		switch {
		case out.Reset:
			require.Len(t, body, 3)
		case out.Grew:
			require.Len(t, body, before+1)
		default:
			require.Len(t, body, before)
		}

		seen := make(map[Cell]bool, len(body))
		cols, rows := e.Grid()
		for _, c := range body {
			require.False(t, seen[c], "duplicate cell %v", c)
			seen[c] = true
			require.True(t, c.X >= 0 && c.X < cols && c.Y >= 0 && c.Y < rows, "cell %v off grid", c)
		}
		require.False(t, seen[e.FoodCell()], "food on body")
	}
}

func TestDirectionHelpers(t *testing.T) {
	assert.Equal(t, Down, Up.Opposite())
	assert.Equal(t, Left, Right.Opposite())
	assert.Equal(t, Up, Down.Opposite())
	assert.Equal(t, Right, Left.Opposite())

	d, ok := ParseDirection(" UP ")
	require.True(t, ok)
	assert.Equal(t, Up, d)
	_, ok = ParseDirection("north")
	assert.False(t, ok)
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, Cell{4, 5}, Cell{4, 6}.Add(Up))
}
