// Package greeting implements the greeting web action. It validates the
// name and place of a request and settles an HTTP-shaped response envelope.
package greeting

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"hello-actions/pkg/lambda"
)

// MandatoryAttributesMessage is the rejection message for a missing name or place
const MandatoryAttributesMessage = "Attributes name and place are mandatory"

// Request holds the attributes the greeting needs
type Request struct {
	Name  string `json:"name" validate:"required"`
	Place string `json:"place" validate:"required"`
}

// NewRequest reads name and place out of params. Unset values stay empty.
func NewRequest(params lambda.Params) Request {
	return Request{
		Name:  params.StringOr("name", ""),
		Place: params.StringOr("place", ""),
	}
}

// Greeting renders the greeting text
func (r Request) Greeting() string {
	return fmt.Sprintf("Hello %s from %s!", r.Name, r.Place)
}

// Handler answers greeting requests
type Handler struct {
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewHandler creates a greeting handler
func NewHandler(logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		validate: validator.New(),
		logger:   logger,
	}
}

// Handle validates params and settles the greeting. A missing attribute
// rejects the promise with a complete 400 envelope.
func (h *Handler) Handle(ctx context.Context, params lambda.Params) *lambda.Promise {
	req := NewRequest(params)

	if err := h.validate.StructCtx(ctx, req); err != nil {
		h.logger.WithFields(logrus.Fields{
			"request_id": lambda.RequestIDFromContext(ctx),
			"component":  "greeting",
			"missing":    missingFields(err),
		}).Debug("Greeting request rejected")

		return Rejected()
	}

	return lambda.Resolve(lambda.NewJSONResponse(http.StatusOK, lambda.ResponseBody{
		Greeting: req.Greeting(),
	}))
}

// Rejected returns the promise settled for a request lacking name or place
func Rejected() *lambda.Promise {
	return lambda.Reject(lambda.NewJSONResponse(http.StatusBadRequest, lambda.ResponseBody{
		Message: MandatoryAttributesMessage,
	}))
}

func missingFields(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fe.Field())
	}
	return fields
}
