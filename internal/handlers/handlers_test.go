package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	. "github.com/onsi/gomega" //nolint:revive
	"github.com/sirupsen/logrus"

	"hello-actions/internal/conductor"
	"hello-actions/internal/config"
	"hello-actions/internal/greeting"
	"hello-actions/pkg/lambda"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestGreetingHandlerStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		event      events.APIGatewayProxyRequest
		wantStatus int
		wantBody   string
	}{
		{
			name:       "json body",
			event:      events.APIGatewayProxyRequest{HTTPMethod: "POST", Body: `{"name":"Ada","place":"London"}`},
			wantStatus: 200,
			wantBody:   `{"greeting":"Hello Ada from London!"}`,
		},
		{
			name: "query string",
			event: events.APIGatewayProxyRequest{
				HTTPMethod:            "GET",
				QueryStringParameters: map[string]string{"name": "Ada", "place": "London"},
			},
			wantStatus: 200,
			wantBody:   `{"greeting":"Hello Ada from London!"}`,
		},
		{
			name:       "empty request",
			event:      events.APIGatewayProxyRequest{HTTPMethod: "GET"},
			wantStatus: 400,
			wantBody:   `{"message":"Attributes name and place are mandatory"}`,
		},
		{
			name:       "missing place",
			event:      events.APIGatewayProxyRequest{HTTPMethod: "POST", Body: `{"name":"Ada"}`},
			wantStatus: 400,
			wantBody:   `{"message":"Attributes name and place are mandatory"}`,
		},
		{
			name: "base64 body",
			event: events.APIGatewayProxyRequest{
				HTTPMethod:      "POST",
				Body:            base64.StdEncoding.EncodeToString([]byte(`{"name":"Ada","place":"London"}`)),
				IsBase64Encoded: true,
			},
			wantStatus: 200,
			wantBody:   `{"greeting":"Hello Ada from London!"}`,
		},
		{
			name:       "malformed body",
			event:      events.APIGatewayProxyRequest{HTTPMethod: "POST", Body: `{"name":`},
			wantStatus: 400,
			wantBody:   `{"message":"Attributes name and place are mandatory"}`,
		},
	}

	h := NewGreetingHandler(greeting.NewHandler(quietLogger()), quietLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)

			resp, err := h.HandleRequest(context.Background(), tt.event)

			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(resp.StatusCode).To(Equal(tt.wantStatus))
			g.Expect(resp.Headers).To(HaveKeyWithValue("Content-Type", "application/json"))
			g.Expect(resp.Body).To(MatchJSON(tt.wantBody))
		})
	}
}

func TestInternalErrorResponse(t *testing.T) {
	g := NewWithT(t)

	resp := internalError()

	g.Expect(resp.StatusCode).To(Equal(500))
	g.Expect(resp.Body).To(MatchJSON(`{"error":"Internal server error","message":"An internal error occurred"}`))
}

func TestConductorHandlerRoundTrip(t *testing.T) {
	g := NewWithT(t)
	h := NewConductorHandler(conductor.NewDispatcher(config.GreetingConfig{}, quietLogger()))

	var params lambda.Params
	g.Expect(json.Unmarshal([]byte(`{"name":"Ada","children":2,"height":180}`), &params)).To(Succeed())

	res, err := h.HandleInvoke(context.Background(), params)
	g.Expect(err).NotTo(HaveOccurred())

	out, err := json.Marshal(res)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(MatchJSON(`{
		"action": "hello_plus",
		"params": {"name": "Ada", "place": "Earth", "children": 2, "height": 180},
		"state": {"$step": 1}
	}`))

	// The host merges the action result with the state and calls back.
	var resumed lambda.Params
	g.Expect(json.Unmarshal([]byte(`{"greeting":"Hello Ada from Earth!","$step":1}`), &resumed)).To(Succeed())

	res, err = h.HandleInvoke(context.Background(), resumed)
	g.Expect(err).NotTo(HaveOccurred())
	out, err = json.Marshal(res)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(MatchJSON(`{"greeting":"Hello Ada from Earth!"}`))
}
