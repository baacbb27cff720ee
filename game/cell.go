package game

import "fmt"

// Cell is the content of one board intersection. Black and White double as
// player identifiers throughout the module.
type Cell uint8

const (
	Empty Cell = iota
	Black
	White
)

func (c Cell) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// Opponent returns the other color. Empty maps to itself.
func Opponent(c Cell) Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// Status is the outcome of a position.
type Status uint8

const (
	InProgress Status = iota
	BlackWin
	WhiteWin
	Draw
)

func (s Status) String() string {
	switch s {
	case BlackWin:
		return "black_win"
	case WhiteWin:
		return "white_win"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

// Over reports whether the game has ended.
func (s Status) Over() bool { return s != InProgress }

// Winner returns the winning color for a decisive status.
func (s Status) Winner() (Cell, bool) {
	switch s {
	case BlackWin:
		return Black, true
	case WhiteWin:
		return White, true
	default:
		return Empty, false
	}
}

// CompareScores maps final totals to an outcome.
func CompareScores(black, white float64) Status {
	switch {
	case black > white:
		return BlackWin
	case white > black:
		return WhiteWin
	default:
		return Draw
	}
}

// Variant selects the rule set governing a match.
type Variant uint8

const (
	Gomoku Variant = iota + 1
	Go
	Reversi
)

// Valid reports whether v is one of the known variants.
func (v Variant) Valid() bool { return v >= Gomoku && v <= Reversi }

func (v Variant) String() string {
	switch v {
	case Gomoku:
		return "gomoku"
	case Go:
		return "go"
	case Reversi:
		return "reversi"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

// DefaultSize is the customary board size for the variant.
func (v Variant) DefaultSize() int {
	switch v {
	case Go:
		return 19
	case Reversi:
		return 8
	default:
		return 15
	}
}

// ParseVariant maps a variant name to its value.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "gomoku":
		return Gomoku, nil
	case "go":
		return Go, nil
	case "reversi":
		return Reversi, nil
	default:
		return 0, fmt.Errorf("unknown variant %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler so variants persist by name.
func (v Variant) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("marshal variant: bad value %d", uint8(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
