package domain

// Direction is the head movement as written in the machine description.
type Direction string

// Offset returns the head displacement for the direction.
// Only MoveRight is distinguished; any other value, including typos, moves left.
func (d Direction) Offset() int {
	if d == MoveRight {
		return 1
	}
	return -1
}

// Transition is one non-deterministic choice for a (state, symbol) key.
type Transition struct {
	Next  string    `json:"next"`
	Write string    `json:"write"`
	Move  Direction `json:"move"`
}

// Key identifies a row of the transition table.
type Key struct {
	State  string `json:"state"`
	Symbol string `json:"symbol"`
}
