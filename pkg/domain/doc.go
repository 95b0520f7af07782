/*
Package domain contains the core domain models of the ntmtrace simulator.

It defines the static machine description, the instantaneous configurations the
engine explores and the report produced at the end of a run. This package is kept
pure and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Machine: The immutable description (states, alphabets, transition relation).
  - Transition: One (next state, write symbol, direction) choice for a key.
  - Configuration: A snapshot of state, tape and head position.
  - Limit: An optional bound used for the depth and step budgets.
  - Report: The ordered text lines (plus structured outcome) of one simulation.
*/
package domain
