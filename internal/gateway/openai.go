package gateway

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	openai "github.com/sashabaranov/go-openai"

	"github.com/reblaw/go-law-proxy/internal/domain"
)

// outcomes counts completion calls by result so provider degradation shows up
// on dashboards without logging prompt content.
var outcomes = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gateway_completions_total",
		Help: "Model-provider completion calls by outcome.",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(outcomes)
}

// Config holds the provider settings for an OpenAI gateway.
type Config struct {
	// APIKey is the bearer credential for the provider.
	APIKey string
	// BaseURL overrides the provider endpoint (tests, proxies). Empty means
	// the public endpoint.
	BaseURL string
	// Model is the completion model identifier, e.g. "gpt-3.5-turbo".
	Model string
	// Temperature is the sampling temperature. Kept low for legal analysis.
	Temperature float32
	// Timeout bounds the whole HTTP exchange; expiry is reported as
	// KindUnreachable.
	Timeout time.Duration
}

// OpenAI sends message sequences to the OpenAI chat-completions endpoint.
// It performs no retries: retry policy, if any, belongs to the caller.
type OpenAI struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAI constructs a gateway from cfg, applying the configured timeout to
// the underlying HTTP client.
func NewOpenAI(cfg Config) *OpenAI {
	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	cc.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAI{
		client:      openai.NewClientWithConfig(cc),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

// Ask sends messages to the provider and returns the trimmed first-choice
// answer. All failures are returned as *Error with a classified Kind.
func (g *OpenAI) Ask(ctx context.Context, messages []domain.ConversationMessage) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		gerr := classify(err)
		outcomes.WithLabelValues(string(gerr.Kind)).Inc()
		return "", gerr
	}

	if len(resp.Choices) == 0 {
		outcomes.WithLabelValues(string(KindRejected)).Inc()
		return "", &Error{Kind: KindRejected, Err: errors.New("no choices in response")}
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		outcomes.WithLabelValues(string(KindRejected)).Inc()
		return "", &Error{Kind: KindRejected, Err: errors.New("empty answer content")}
	}

	outcomes.WithLabelValues("ok").Inc()
	return answer, nil
}

// classify maps client errors onto the gateway taxonomy:
//   - provider error payloads (HTTP error status with parseable body) → rejected
//   - unparseable provider responses → malformed
//   - transport failures and deadline expiry → unreachable
func classify(err error) *Error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Kind: KindRejected, Err: err}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Kind: KindUnreachable, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindUnreachable, Err: err}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &Error{Kind: KindUnreachable, Err: err}
	}

	// Remaining cases are decoding failures of either the success or the
	// error body.
	return &Error{Kind: KindMalformed, Err: err}
}
