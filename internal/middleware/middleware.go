package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"hello-actions/pkg/lambda"
)

// HandlerFunc adapts a plain function to the Lambda Handler interface
type HandlerFunc func(ctx context.Context, payload []byte) ([]byte, error)

// Invoke calls f(ctx, payload)
func (f HandlerFunc) Invoke(ctx context.Context, payload []byte) ([]byte, error) {
	return f(ctx, payload)
}

// Middleware decorates a Lambda handler
type Middleware func(awslambda.Handler) awslambda.Handler

// Chain wraps h with mws; the first middleware is the outermost
func Chain(h awslambda.Handler, mws ...Middleware) awslambda.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Recovery turns a panicking invocation into an error
func Recovery(logger *logrus.Logger) Middleware {
	return func(next awslambda.Handler) awslambda.Handler {
		return HandlerFunc(func(ctx context.Context, payload []byte) (out []byte, err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.WithFields(logrus.Fields{
						"request_id":  lambda.RequestIDFromContext(ctx),
						"panic":       fmt.Sprintf("%v", r),
						"stack_trace": string(debug.Stack()),
					}).Error("Recovered from panic")

					out = nil
					err = fmt.Errorf("panic during invocation: %v", r)
				}
			}()

			return next.Invoke(ctx, payload)
		})
	}
}

// Standard returns the middleware every action runs with. Recovery sits
// innermost so the logger sees recovered panics as errors.
func Standard(logger *logrus.Logger, action string) []Middleware {
	return []Middleware{
		RequestID(),
		StructuredLogger(logger, action),
		Recovery(logger),
	}
}
