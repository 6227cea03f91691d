package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskPlanAgent produces the plan-agent JSON envelope (parameter
	// questions, teasers, adaptation proposals).
	TaskPlanAgent TaskType = "plan_agent"
)

// TaskConfig holds the generation and retry policy for one task. Each task
// carries its own budget; there is no global retry knob.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides Config.TimeoutMs if > 0
	MaxRetries  int // extra attempts after the first
}

// Config holds all configuration for the LLM subsystem.
type Config struct {
	Enabled   bool
	LogCalls  bool
	Endpoint  string
	Model     string
	TimeoutMs int
	Tasks     map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with sensible defaults. LLM is disabled
// by default; the draft engine never depends on it.
func DefaultConfig() Config {
	return Config{
		Enabled:   false,
		LogCalls:  false,
		Endpoint:  "http://localhost:11434",
		Model:     "llama3.2",
		TimeoutMs: 10000,
		Tasks: map[TaskType]TaskConfig{
			TaskPlanAgent: {Temperature: 0.2, MaxTokens: 1024, TimeoutMs: 15000, MaxRetries: 1},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables, falling
// back to defaults for any unset or unparseable values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("CADENCE_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CADENCE_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CADENCE_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("CADENCE_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("CADENCE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("CADENCE_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			for task, tc := range cfg.Tasks {
				tc.MaxRetries = n
				cfg.Tasks[task] = tc
			}
		}
	}
	return cfg
}

// TaskTimeout returns the effective timeout for a task in milliseconds.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// TaskRetries returns how many extra attempts the task allows.
func (c Config) TaskRetries(task TaskType) int {
	return c.Tasks[task].MaxRetries
}
