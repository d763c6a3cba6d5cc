package middleware

import (
	"context"
	"time"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hello-actions/pkg/lambda"
)

// RequestID stores a request ID in the invocation context. The Lambda
// runtime's AWS request ID is used when present.
func RequestID() Middleware {
	return func(next awslambda.Handler) awslambda.Handler {
		return HandlerFunc(func(ctx context.Context, payload []byte) ([]byte, error) {
			if lambda.RequestIDFromContext(ctx) == "" {
				requestID := ""
				if lc, ok := lambdacontext.FromContext(ctx); ok {
					requestID = lc.AwsRequestID
				}
				if requestID == "" {
					requestID = uuid.New().String()
				}
				ctx = lambda.WithRequestID(ctx, requestID)
			}

			return next.Invoke(ctx, payload)
		})
	}
}

// StructuredLogger logs every invocation with its request context
func StructuredLogger(logger *logrus.Logger, action string) Middleware {
	return func(next awslambda.Handler) awslambda.Handler {
		return HandlerFunc(func(ctx context.Context, payload []byte) ([]byte, error) {
			start := time.Now()

			out, err := next.Invoke(ctx, payload)

			latency := time.Since(start)
			fields := logrus.Fields{
				"timestamp":     start.Format(time.RFC3339Nano),
				"request_id":    lambda.RequestIDFromContext(ctx),
				"action":        action,
				"latency_ms":    float64(latency.Nanoseconds()) / 1000000,
				"payload_size":  len(payload),
				"response_size": len(out),
			}
			if lambdacontext.FunctionName != "" {
				fields["function_name"] = lambdacontext.FunctionName
			}

			// Payloads are only logged while debugging
			if logger.IsLevelEnabled(logrus.DebugLevel) && len(payload) < 1024 {
				fields["payload"] = string(payload)
			}

			if err != nil {
				fields["error"] = err.Error()
				logger.WithFields(fields).Error("Invocation failed")
				return out, err
			}

			logger.WithFields(fields).Info("Invocation completed")
			return out, nil
		})
	}
}
