package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// GenerateRequest holds the parameters for a single generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of a generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// Client provides access to a language model for text generation.
type Client interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the model server is reachable.
	Available(ctx context.Context) bool
}

// ollamaClient implements Client against the Ollama HTTP API.
type ollamaClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewOllamaClient creates a Client that talks to a local Ollama instance.
func NewOllamaClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &ollamaClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// apiGenerateRequest is the JSON body sent to POST /api/generate.
type apiGenerateRequest struct {
	Model   string     `json:"model"`
	System  string     `json:"system,omitempty"`
	Prompt  string     `json:"prompt"`
	Stream  bool       `json:"stream"`
	Options apiOptions `json:"options,omitempty"`
}

type apiOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// apiGenerateResponse is the non-streaming body returned by /api/generate.
type apiGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

// Generate runs the request under the task's deadline, retrying per the
// task's budget with a short growing backoff between attempts.
func (c *ollamaClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	body := c.payload(req)

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TaskTimeout(req.Task))*time.Millisecond)
	defer cancel()

	attempts := 0
	budget := 1 + c.cfg.TaskRetries(req.Task)
	var lastErr error

	for attempts < budget {
		if attempts > 0 && !backoff(ctx, attempts) {
			break
		}
		attempts++

		resp, err := c.callOnce(ctx, body)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(CallEvent{
				Task:      req.Task,
				Model:     c.cfg.Model,
				Attempts:  attempts,
				LatencyMs: latency,
				Success:   true,
			})
			return &GenerateResponse{
				Text:      resp.Response,
				Model:     resp.Model,
				LatencyMs: latency,
			}, nil
		}
		lastErr = err

		// The deadline ends the retry loop, not just the attempt.
		if ctx.Err() != nil {
			break
		}
	}

	finalErr := classify(ctx, lastErr)
	c.observer.OnCallComplete(CallEvent{
		Task:      req.Task,
		Model:     c.cfg.Model,
		Attempts:  attempts,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: Code(finalErr),
	})
	return nil, finalErr
}

// payload merges the task defaults with any per-request overrides.
func (c *ollamaClient) payload(req GenerateRequest) apiGenerateRequest {
	taskCfg := c.cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}
	return apiGenerateRequest{
		Model:  c.cfg.Model,
		System: req.SystemPrompt,
		Prompt: req.UserPrompt,
		Stream: false,
		Options: apiOptions{
			Temperature: temp,
			NumPredict:  maxTok,
		},
	}
}

func (c *ollamaClient) callOnce(ctx context.Context, body apiGenerateRequest) (*apiGenerateResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + "/api/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp apiGenerateResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &resp, nil
}

func (c *ollamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	url := c.cfg.Endpoint + "/api/tags"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// backoff waits before retry number n. Returns false once the deadline
// wins the wait.
func backoff(ctx context.Context, n int) bool {
	timer := time.NewTimer(time.Duration(n) * 200 * time.Millisecond)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// classify maps the terminal failure of a generate loop onto the package
// sentinels.
func classify(ctx context.Context, lastErr error) error {
	switch {
	case ctx.Err() != nil:
		return ErrTimeout
	case isConnectionError(lastErr):
		return ErrUnavailable
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}
}

func isConnectionError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
