package conductor

import (
	"encoding/json"
	"fmt"

	"hello-actions/pkg/lambda"
)

// StepKey is the parameter that carries the continuation step between invocations
const StepKey = "$step"

// Step is the position of the dispatcher in its two-state machine
type Step int

const (
	// StepInit picks the next action
	StepInit Step = iota
	// StepResumed returns the forwarded results to the host
	StepResumed
)

func (s Step) String() string {
	switch s {
	case StepInit:
		return "init"
	case StepResumed:
		return "resumed"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// MarshalJSON encodes the step as the integer the host echoes back
func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(s))
}

// ParseStep maps a raw $step value onto the state machine. Unset values are
// StepInit; every set value is StepResumed. exact is false when a set value
// is anything other than 1.
func ParseStep(raw interface{}) (step Step, exact bool) {
	if s, ok := raw.(Step); ok {
		if s == StepInit {
			return StepInit, true
		}
		return StepResumed, s == StepResumed
	}

	if !lambda.Truthy(raw) {
		return StepInit, true
	}

	switch v := raw.(type) {
	case float64:
		return StepResumed, v == 1
	case int:
		return StepResumed, v == 1
	case int64:
		return StepResumed, v == 1
	case json.Number:
		return StepResumed, v.String() == "1"
	default:
		return StepResumed, false
	}
}

// State is the continuation the host persists and merges into the next invocation
type State struct {
	Step Step `json:"$step"`
}
