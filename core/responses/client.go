package responses

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	responsesPath = "/v1/responses"
	modelsPath    = "/v1/models"
)

// Client talks to an OpenAI-style responses endpoint.
type Client struct {
	baseURL string
	model   string
	apiKey  string

	httpClient *http.Client
}

type ClientOption func(*Client)

// WithAPIKey sets a bearer token for deployments that require one. Local
// vLLM servers usually don't.
func WithAPIKey(apiKey string) ClientOption {
	return func(c *Client) { c.apiKey = apiKey }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient creates a client for the responses endpoint at baseURL.
func NewClient(baseURL, model string, opts ...ClientOption) *Client {
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(operationName string, request *http.Request) string {
				return operationName + " " + request.URL.Path
			}),
		)},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// BaseURL returns the configured server base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// PromptOptions collects the per-turn request options.
type PromptOptions struct {
	Tools              []ToolDescriptor
	PreviousResponseID *string
	ToolOutputs        []ToolCallOutput
}

type PromptOption func(*PromptOptions)

// WithTools adds tool descriptors to the request. Repeating this option
// sequentially adds more tools.
func WithTools(tools ...ToolDescriptor) PromptOption {
	return func(opts *PromptOptions) {
		opts.Tools = append(opts.Tools, tools...)
	}
}

// WithPreviousResponseID continues the conversation from an earlier
// response.
func WithPreviousResponseID(id string) PromptOption {
	return func(opts *PromptOptions) {
		opts.PreviousResponseID = &id
	}
}

// WithToolOutputs supplies function-call results for the calls the model
// made on the previous turn.
func WithToolOutputs(outputs ...ToolCallOutput) PromptOption {
	return func(opts *PromptOptions) {
		opts.ToolOutputs = append(opts.ToolOutputs, outputs...)
	}
}

// CheckHealth verifies that the server is reachable by listing models.
func (c *Client) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+modelsPath, nil)
	if err != nil {
		return fmt.Errorf("error creating HTTP request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error reaching server at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("non-OK HTTP status: %s", resp.Status)
	}
	return nil
}

// Prompt makes a non-streaming request and returns the finished response
// object.
func (c *Client) Prompt(ctx context.Context, prompt string, opts ...PromptOption) (*Response, error) {
	options := PromptOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	ctx, span := tracer.Start(ctx, "prompt response")
	defer span.End()
	span.SetAttributes(attribute.String("request.model", c.model))

	reqBody := requestBody{
		Model:              c.model,
		Input:              toInput(prompt, options.ToolOutputs),
		Stream:             false,
		Tools:              options.Tools,
		PreviousResponseID: options.PreviousResponseID,
	}

	requestBodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		err = fmt.Errorf("error marshalling JSON: %w", err)
		span.RecordError(err)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+responsesPath, bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		err = fmt.Errorf("error creating HTTP request: %w", err)
		span.RecordError(err)
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("error sending request: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		if errorBody, err := io.ReadAll(resp.Body); err == nil {
			span.SetAttributes(attribute.String("response.error", string(errorBody)))
		}
		err := fmt.Errorf("non-OK HTTP status: %s", resp.Status)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("error reading response body: %w", err)
		span.RecordError(err)
		return nil, err
	}

	response, err := parseResponse(bodyBytes)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("response.id", response.ID))
	return response, nil
}
