package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureObserver struct {
	events []CallEvent
}

func (o *captureObserver) OnCallComplete(event CallEvent) {
	o.events = append(o.events, event)
}

func testConfig(endpoint string, retries int) Config {
	return Config{
		Enabled:   true,
		Endpoint:  endpoint,
		Model:     "test-model",
		TimeoutMs: 3000,
		Tasks: map[TaskType]TaskConfig{
			TaskPlanAgent: {Temperature: 0.2, MaxTokens: 64, MaxRetries: retries},
		},
	}
}

func TestGenerate_SuccessEmitsEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		w.Write([]byte(`{"model":"test-model","response":"hello"}`))
	}))
	defer srv.Close()

	obs := &captureObserver{}
	client := NewOllamaClient(testConfig(srv.URL, 0), obs)

	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskPlanAgent,
		UserPrompt: "say hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Text)
	assert.Equal(t, "test-model", resp.Model)

	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, 1, obs.events[0].Attempts)
}

func TestGenerate_RetriesPerTaskBudgetThenExhausts(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "overloaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	obs := &captureObserver{}
	client := NewOllamaClient(testConfig(srv.URL, 2), obs)

	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskPlanAgent})
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, 3, calls, "one call plus two retries")

	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, 3, obs.events[0].Attempts)
	assert.Equal(t, "RETRY_EXHAUSTED", obs.events[0].ErrorCode)
}

func TestGenerate_UnreachableServerIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close() // nothing listens here anymore

	client := NewOllamaClient(testConfig(endpoint, 0), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskPlanAgent})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL, 0), NoopObserver{})
	assert.True(t, client.Available(context.Background()))

	srv.Close()
	assert.False(t, client.Available(context.Background()))
}
