package domain

import "fmt"

type Phase string

const (
	PhaseInit       Phase = "init"
	PhaseForm       Phase = "form"
	PhaseProcessing Phase = "processing"
	PhaseSuccess    Phase = "success"
	PhaseError      Phase = "error"
)

var phaseTransitions = map[Phase][]Phase{
	PhaseInit:       {PhaseForm, PhaseError},
	PhaseForm:       {PhaseProcessing},
	PhaseProcessing: {PhaseForm, PhaseSuccess, PhaseError},
}

func (p Phase) Valid() bool {
	switch p {
	case PhaseInit, PhaseForm, PhaseProcessing, PhaseSuccess, PhaseError:
		return true
	default:
		return false
	}
}

func (p Phase) Terminal() bool {
	return p == PhaseSuccess || p == PhaseError
}

// CanTransition reports whether the state machine allows moving from p to next.
// Processing -> Form is the only backward edge.
func (p Phase) CanTransition(next Phase) bool {
	for _, allowed := range phaseTransitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (p Phase) checkTransition(next Phase) error {
	if !p.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p, next)
	}
	return nil
}
