package handlers

import (
	"context"

	"hello-actions/internal/conductor"
	"hello-actions/pkg/lambda"
)

// ConductorHandler exposes the dispatcher as a raw-JSON Lambda action
type ConductorHandler struct {
	dispatcher *conductor.Dispatcher
}

// NewConductorHandler creates a new conductor handler
func NewConductorHandler(dispatcher *conductor.Dispatcher) *ConductorHandler {
	return &ConductorHandler{
		dispatcher: dispatcher,
	}
}

// HandleInvoke runs one conductor step. The returned value is either the
// next action to run or the final parameters.
func (h *ConductorHandler) HandleInvoke(ctx context.Context, params lambda.Params) (conductor.Result, error) {
	return h.dispatcher.Dispatch(ctx, params), nil
}
