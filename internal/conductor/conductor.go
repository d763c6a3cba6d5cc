// Package conductor implements the greeting conductor action: it picks the
// greeting action the host should run next and, once resumed, hands the
// forwarded results back.
package conductor

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"hello-actions/internal/config"
	"hello-actions/pkg/lambda"
)

// Action names a downstream action the host can invoke
type Action string

const (
	ActionHelloWorld Action = "hello_world"
	ActionHelloPlus  Action = "hello_plus"
)

// Input is the typed view of the parameters the dispatcher reads
type Input struct {
	Step     Step
	Name     interface{}
	Place    interface{}
	Children interface{}
	Height   interface{}
}

// HasDetails reports whether both children and height are set
func (in Input) HasDetails() bool {
	return lambda.Truthy(in.Children) && lambda.Truthy(in.Height)
}

// Continuation asks the host to invoke Action with Params, then call the
// dispatcher again with State merged into the action's result.
type Continuation struct {
	Action Action        `json:"action"`
	Params lambda.Params `json:"params"`
	State  State         `json:"state"`
}

// Result is either a Continuation or, once resumed, the final parameters
type Result struct {
	Next  *Continuation
	Final lambda.Params
}

// Terminal reports whether the result ends the conductor run
func (r Result) Terminal() bool {
	return r.Next == nil
}

// Output returns the value handed back to the host
func (r Result) Output() interface{} {
	if r.Next != nil {
		return r.Next
	}
	if r.Final == nil {
		return lambda.Params{}
	}
	return r.Final
}

// MarshalJSON encodes the result in the shape the host expects
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Output())
}

// Dispatcher routes greeting requests to hello_world or hello_plus
type Dispatcher struct {
	defaultName  string
	defaultPlace string
	logger       *logrus.Logger
}

// NewDispatcher creates a dispatcher using the configured greeting defaults
func NewDispatcher(cfg config.GreetingConfig, logger *logrus.Logger) *Dispatcher {
	if cfg.DefaultName == "" {
		cfg.DefaultName = config.DefaultName
	}
	if cfg.DefaultPlace == "" {
		cfg.DefaultPlace = config.DefaultPlace
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Dispatcher{
		defaultName:  cfg.DefaultName,
		defaultPlace: cfg.DefaultPlace,
		logger:       logger,
	}
}

// ParseInput reads the dispatcher fields out of params, applying defaults.
// Set values are kept as they are so they reach the next action unchanged.
func (d *Dispatcher) ParseInput(params lambda.Params) Input {
	step, _ := ParseStep(params[StepKey])
	return Input{
		Step:     step,
		Name:     params.ValueOr("name", d.defaultName),
		Place:    params.ValueOr("place", d.defaultPlace),
		Children: params["children"],
		Height:   params["height"],
	}
}

// Dispatch runs one step of the conductor. params is never modified.
func (d *Dispatcher) Dispatch(ctx context.Context, params lambda.Params) Result {
	log := d.logger.WithFields(logrus.Fields{
		"request_id": lambda.RequestIDFromContext(ctx),
		"component":  "conductor",
	})

	step, exact := ParseStep(params[StepKey])

	switch step {
	case StepInit:
		in := d.ParseInput(params)
		next := &Continuation{
			Action: ActionHelloWorld,
			Params: lambda.Params{
				"name":  in.Name,
				"place": in.Place,
			},
			State: State{Step: StepResumed},
		}

		if in.HasDetails() {
			next.Action = ActionHelloPlus
			next.Params["children"] = in.Children
			next.Params["height"] = in.Height
		}

		log.WithFields(logrus.Fields{
			"step":   step.String(),
			"action": next.Action,
		}).Debug("Dispatching greeting action")

		return Result{Next: next}

	default:
		if !exact {
			log.WithField("raw_step", params[StepKey]).Warn("Unexpected step value, treating as resumed")
		}
		log.WithField("step", step.String()).Debug("Conductor run complete")

		return Result{Final: params.Without(StepKey)}
	}
}
