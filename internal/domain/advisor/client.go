package advisor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/tracing"
)

const (
	generatePath = "/api/generate"
	userAgent    = "BuildPlanner-Advisor/1.0"
)

var (
	// ErrUnavailable wraps transport failures talking to the model server.
	ErrUnavailable = errors.New("model server unavailable")
	// ErrStatus is returned for non-2xx answers.
	ErrStatus = errors.New("model server returned an error status")
	// ErrMalformed is returned when the answer is not a generate response.
	ErrMalformed = errors.New("malformed model response")
	// ErrDisabled is returned by the service when the model is switched off.
	ErrDisabled = errors.New("model disabled")
	// ErrEmptyResponse is returned by the service for blank model output.
	ErrEmptyResponse = errors.New("empty model response")
)

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// Client calls the generate endpoint of an Ollama server. Transport errors
// and 5xx answers are retried by the underlying retryable client; every
// call passes through a circuit breaker.
type Client struct {
	resty   *resty.Client
	breaker *resilience.Breaker
	model   string
}

// NewBreaker returns the breaker settings used for the model server.
// onStateChange may be nil.
func NewBreaker(onStateChange func(name string, from, to resilience.State)) *resilience.Breaker {
	return resilience.New("advisor", resilience.Settings{
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		// A caller giving up is not a server failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: onStateChange,
	})
}

// NewClient builds a client for cfg. A nil breaker gets NewBreaker(nil).
func NewClient(cfg Config, breaker *resilience.Breaker) *Client {
	if breaker == nil {
		breaker = NewBreaker(nil)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = max(cfg.Retries, 0)
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.Logger = nil
	// Hand the last response back instead of a "giving up" error so status
	// failures stay distinguishable from transport failures.
	retryClient.ErrorHandler = func(resp *http.Response, err error, _ int) (*http.Response, error) {
		if resp != nil {
			return resp, nil
		}
		return nil, err
	}

	restyClient := resty.NewWithClient(retryClient.StandardClient())
	restyClient.
		SetBaseURL(cfg.URL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Content-Type", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)

	return &Client{
		resty:   restyClient,
		breaker: breaker,
		model:   cfg.Model,
	}
}

// Breaker exposes the client's circuit breaker.
func (c *Client) Breaker() *resilience.Breaker {
	return c.breaker
}

// Generate sends prompt without streaming and returns the response text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return resilience.Do(ctx, c.breaker, func(ctx context.Context) (string, error) {
		req := c.resty.R().
			SetContext(ctx).
			SetBody(generateRequest{Model: c.model, Prompt: prompt, Stream: false})
		tracing.Inject(ctx, req.Header)

		resp, err := req.Post(generatePath)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		if resp.IsError() {
			return "", fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode())
		}

		var out generateResponse
		if err := sonic.Unmarshal(resp.Body(), &out); err != nil {
			return "", fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		if out.Error != "" {
			return "", fmt.Errorf("%w: %s", ErrStatus, out.Error)
		}
		return out.Response, nil
	})
}
