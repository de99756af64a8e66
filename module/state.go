package module

// State is a module's lifecycle phase.
type State int

const (
	// StateUnresolved is the initial phase: the module value exists but has
	// not been handed to its owner yet. Assembly always moves past it.
	StateUnresolved State = iota

	// StateResolved means dependency resolution and path composition are
	// complete. Assembly produces modules in this phase.
	StateResolved

	// StateActivated means the module is serving. Entered by the lifecycle
	// manager, never by assembly.
	StateActivated

	// StateDeactivated means the module was taken out of service and may be
	// activated again.
	StateDeactivated

	// StateBroken is terminal: the module failed and will not recover.
	StateBroken
)

// String returns the phase name in lower-case form.
func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateResolved:
		return "resolved"
	case StateActivated:
		return "activated"
	case StateDeactivated:
		return "deactivated"
	case StateBroken:
		return "broken"
	default:
		return "unknown"
	}
}

// Reason records what caused the most recent state change.
type Reason int

const (
	ReasonCreated Reason = iota
	ReasonStarted
	ReasonStopped
	ReasonFailed
)

// String returns the reason name in lower-case form.
func (r Reason) String() string {
	switch r {
	case ReasonCreated:
		return "created"
	case ReasonStarted:
		return "started"
	case ReasonStopped:
		return "stopped"
	case ReasonFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// transitions holds the legal lifecycle moves. StateBroken has no exits.
var transitions = map[State][]State{
	StateUnresolved:  {StateResolved},
	StateResolved:    {StateActivated, StateBroken},
	StateActivated:   {StateDeactivated, StateBroken},
	StateDeactivated: {StateActivated, StateBroken},
}

// CanTransition reports whether a move from s to next is legal.
func (s State) CanTransition(next State) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}
