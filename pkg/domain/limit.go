package domain

import (
	"encoding/json"
	"strconv"
)

// Limit is an optional bound. The zero value is unbounded.
type Limit struct {
	n       int
	bounded bool
}

// Unbounded returns a limit that never triggers.
func Unbounded() Limit { return Limit{} }

// Bounded returns a limit of n. Negative values are kept as given.
func Bounded(n int) Limit { return Limit{n: n, bounded: true} }

// LimitOf maps a raw parameter to a limit: 0 means unbounded.
func LimitOf(n int) Limit {
	if n == 0 {
		return Unbounded()
	}
	return Bounded(n)
}

// IsBounded reports whether the limit can trigger.
func (l Limit) IsBounded() bool { return l.bounded }

// Value returns the bound, or 0 when unbounded.
func (l Limit) Value() int { return l.n }

// Allows reports whether count is still below the bound.
func (l Limit) Allows(count int) bool {
	return !l.bounded || count < l.n
}

// Reached reports whether count has reached the bound.
func (l Limit) Reached(count int) bool {
	return l.bounded && count >= l.n
}

// Within caps l at ceiling. An unbounded ceiling leaves l unchanged.
func (l Limit) Within(ceiling Limit) Limit {
	if !ceiling.bounded {
		return l
	}
	if !l.bounded || l.n > ceiling.n {
		return ceiling
	}
	return l
}

func (l Limit) String() string {
	if !l.bounded {
		return "unbounded"
	}
	return strconv.Itoa(l.n)
}

// MarshalJSON encodes an unbounded limit as 0, matching the parameter file.
func (l Limit) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.n)
}

// UnmarshalJSON accepts the parameter file encoding.
func (l *Limit) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*l = LimitOf(n)
	return nil
}
