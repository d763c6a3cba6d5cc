package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"hello-actions/internal/greeting"
	"hello-actions/pkg/lambda"
)

// GreetingHandler exposes the greeting web action behind API Gateway
type GreetingHandler struct {
	greeting *greeting.Handler
	logger   *logrus.Logger
}

// NewGreetingHandler creates a new greeting handler
func NewGreetingHandler(h *greeting.Handler, logger *logrus.Logger) *GreetingHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &GreetingHandler{
		greeting: h,
		logger:   logger,
	}
}

// HandleRequest answers an API Gateway proxy request. Resolved and rejected
// greetings are both returned as proxy responses; only internal failures
// become a 500.
func (h *GreetingHandler) HandleRequest(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.logger.WithFields(logrus.Fields{
		"request_id": lambda.RequestIDFromContext(ctx),
		"method":     event.HTTPMethod,
		"path":       event.Path,
	})

	promise := greeting.Rejected()
	params, err := lambda.NewRequest(event).Params()
	if err != nil {
		log.WithField("error", err.Error()).Warn("Unreadable request body")
	} else {
		promise = h.greeting.Handle(ctx, params)
	}

	result, err := promise.Await(ctx)
	if err != nil {
		log.WithField("error", err.Error()).Error("Greeting did not settle")
		return internalError(), nil
	}

	resp, err := result.Response.ToAPIGateway()
	if err != nil {
		log.WithField("error", err.Error()).Error("Failed to encode greeting response")
		return internalError(), nil
	}

	if result.Settlement == lambda.Rejected {
		log.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"message":     result.Response.Body.Message,
		}).Warn("Greeting rejected")
	}

	return resp, nil
}

func internalError() events.APIGatewayProxyResponse {
	body, _ := json.Marshal(ErrorResponse{
		Error:   "Internal server error",
		Message: "An internal error occurred",
	})

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusInternalServerError,
		Headers:    map[string]string{"Content-Type": lambda.ContentTypeJSON},
		Body:       string(body),
	}
}
