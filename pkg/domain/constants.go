package domain

const (
	// Blank is the symbol appended to the input to form the initial tape.
	Blank = "_"

	// MoveRight is the only direction value that moves the head right.
	// Every other value moves it left.
	MoveRight Direction = "R"

	// MoveLeft is the conventional left direction.
	MoveLeft Direction = "L"
)
