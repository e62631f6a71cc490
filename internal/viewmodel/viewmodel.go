package viewmodel

// HomePage holds data for the create-game form.
type HomePage struct {
	Title string
	Names []string
	Error string
}

// BoardCell is one square of the goose board.
type BoardCell struct {
	Square int
	// Effect is the lower-case effect name, empty for plain squares.
	Effect string
	Target int
	Tokens []string
}

// BoardFragment holds data for the board UI fragment.
type BoardFragment struct {
	GameID string
	Cells  []BoardCell
}

// PlayerEntry holds one player's state for the players panel.
type PlayerEntry struct {
	Index     int
	Name      string
	Position  int
	SkipTurns int
	InPrison  bool
	Current   bool
}

// PlayersFragment holds data for the players panel.
type PlayersFragment struct {
	GameID      string
	Players     []PlayerEntry
	Status      string
	CurrentName string
	WinnerName  string
}

// LogFragment holds data for the turn log panel.
type LogFragment struct {
	Lines      []string
	LastEvents []string
}

// GamePage holds data for the main game page template.
type GamePage struct {
	Title     string
	GameID    string
	InviteURL string
	Board     BoardFragment
	Players   PlayersFragment
	Log       LogFragment
}
