package lambda

import (
	"context"
	"fmt"
)

// Settlement tells which channel a Promise settled on
type Settlement int

const (
	// Resolved marks a successful settlement
	Resolved Settlement = iota
	// Rejected marks a failed settlement. The Response is still a complete envelope.
	Rejected
)

func (s Settlement) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("settlement(%d)", int(s))
	}
}

// Result is the value a Promise settles with
type Result struct {
	Settlement Settlement
	Response   *Response
}

// Promise is a single-settlement asynchronous Response
type Promise struct {
	done   chan struct{}
	result Result
}

// Resolve returns a promise already resolved with resp
func Resolve(resp *Response) *Promise {
	return settled(Result{Settlement: Resolved, Response: resp})
}

// Reject returns a promise already rejected with resp
func Reject(resp *Response) *Promise {
	return settled(Result{Settlement: Rejected, Response: resp})
}

func settled(r Result) *Promise {
	p := &Promise{done: make(chan struct{}), result: r}
	close(p.done)
	return p
}

// Await blocks until the promise settles or ctx is done
func (p *Promise) Await(ctx context.Context) (Result, error) {
	select {
	case <-p.done:
		return p.result, nil
	default:
	}

	select {
	case <-p.done:
		return p.result, nil
	case <-ctx.Done():
		return Result{}, fmt.Errorf("awaiting settlement: %w", ctx.Err())
	}
}
