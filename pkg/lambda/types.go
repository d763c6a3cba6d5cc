package lambda

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
)

// ContentTypeJSON is the only content type the actions produce
const ContentTypeJSON = "application/json"

// Request represents the HTTP view of a web action invocation
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	PathParams  map[string]string `json:"path_params"`
	// IsBase64Encoded marks Body as base64 text from API Gateway
	IsBase64Encoded bool `json:"is_base64_encoded"`
}

// NewRequest converts an API Gateway proxy event into a Request
func NewRequest(event events.APIGatewayProxyRequest) *Request {
	return &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        []byte(event.Body),
		PathParams:  event.PathParameters,

		IsBase64Encoded: event.IsBase64Encoded,
	}
}

// Params merges query string parameters with a JSON object body.
// Body fields win over query parameters of the same name.
func (r *Request) Params() (Params, error) {
	params := make(Params, len(r.QueryParams))
	for k, v := range r.QueryParams {
		params[k] = v
	}

	raw := r.Body
	if r.IsBase64Encoded && len(raw) > 0 {
		decoded := make([]byte, base64.StdEncoding.DecodedLen(len(raw)))
		n, err := base64.StdEncoding.Decode(decoded, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 request body: %w", err)
		}
		raw = decoded[:n]
	}

	if len(raw) == 0 {
		return params, nil
	}

	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	for k, v := range body {
		params[k] = v
	}

	return params, nil
}

// ResponseBody is the payload of a Response: a greeting on success, a message on failure
type ResponseBody struct {
	Greeting string `json:"greeting,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Response represents the HTTP-shaped envelope returned by web actions
type Response struct {
	Body       ResponseBody      `json:"body"`
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
}

// NewJSONResponse builds a Response carrying the JSON content-type header
func NewJSONResponse(statusCode int, body ResponseBody) *Response {
	return &Response{
		Body:       body,
		StatusCode: statusCode,
		Headers:    map[string]string{"Content-Type": ContentTypeJSON},
	}
}

// ToAPIGateway encodes the response for the API Gateway proxy integration
func (r *Response) ToAPIGateway() (events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(r.Body)
	if err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("failed to encode response body: %w", err)
	}

	headers := make(map[string]string, len(r.Headers))
	for k, v := range r.Headers {
		headers[k] = v
	}

	return events.APIGatewayProxyResponse{
		StatusCode: r.StatusCode,
		Headers:    headers,
		Body:       string(body),
	}, nil
}
