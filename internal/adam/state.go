package adam

// State is the lifecycle stage of an optimization run.
//
//	Initialized -> Running -> {Converged, MaxIterReached}
type State int

const (
	// StateInitialized: inputs validated, moments zeroed, no iteration run yet.
	StateInitialized State = iota
	// StateRunning: at least one iteration done, no stopping rule fired.
	StateRunning
	// StateConverged: the objective failed to improve by tol for
	// NIterNoChange consecutive iterations.
	StateConverged
	// StateMaxIterReached: MaxIter iterations ran without converging.
	StateMaxIterReached
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateConverged:
		return "converged"
	case StateMaxIterReached:
		return "max_iter_reached"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further iterations will run.
func (s State) Terminal() bool {
	return s == StateConverged || s == StateMaxIterReached
}
