package predictor

// State es el estado del ciclo request/response de una predicción.
//
//	idle → submitting → {succeeded | failed} → idle
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Transition es un cambio de estado observado.
type Transition struct {
	From State
	To   State
}

// validTransitions lista los únicos cambios permitidos.
var validTransitions = map[Transition]bool{
	{StateIdle, StateSubmitting}:      true,
	{StateSubmitting, StateSucceeded}: true,
	{StateSubmitting, StateFailed}:    true,
	{StateSucceeded, StateIdle}:       true,
	{StateFailed, StateIdle}:          true,
}
