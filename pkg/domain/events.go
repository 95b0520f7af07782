package domain

// LevelEvent is emitted when the engine starts exploring a depth level.
type LevelEvent struct {
	Depth        int `json:"depth"`
	FrontierSize int `json:"frontier_size"`
}

// PruneEvent is emitted when a transition would move the head off the tape.
type PruneEvent struct {
	Depth    int `json:"depth"`
	Position int `json:"position"`
}

// OutcomeEvent is emitted once per simulation with the terminal event.
type OutcomeEvent struct {
	Outcome      Outcome `json:"outcome"`
	Steps        int     `json:"steps"`
	Levels       int     `json:"levels"`
	Materialized int     `json:"materialized"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks never influence control flow or report contents.
type LifecycleHooks struct {
	OnLevel   func(LevelEvent)
	OnPrune   func(PruneEvent)
	OnOutcome func(OutcomeEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnLevel: func(e LevelEvent) {
			if h.OnLevel != nil {
				h.OnLevel(e)
			}
			if other.OnLevel != nil {
				other.OnLevel(e)
			}
		},
		OnPrune: func(e PruneEvent) {
			if h.OnPrune != nil {
				h.OnPrune(e)
			}
			if other.OnPrune != nil {
				other.OnPrune(e)
			}
		},
		OnOutcome: func(e OutcomeEvent) {
			if h.OnOutcome != nil {
				h.OnOutcome(e)
			}
			if other.OnOutcome != nil {
				other.OnOutcome(e)
			}
		},
	}
}
