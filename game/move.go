package game

import "fmt"

// Move is a zero-based board coordinate. The zero value is a valid move at
// the origin; the distinguished Pass value stands for a turn that places no
// stone.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Pass is the sentinel for a turn without a placement. Its coordinates lie
// outside every board.
var Pass = Move{Row: -1, Col: -1}

// IsPass reports whether m is the pass sentinel.
func (m Move) IsPass() bool { return m == Pass }

func (m Move) String() string {
	if m.IsPass() {
		return "pass"
	}
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}
