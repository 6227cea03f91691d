package llm

import (
	"io"
	"log/slog"
)

// CallEvent is the telemetry record for one finished model invocation.
type CallEvent struct {
	Task      TaskType
	Model     string
	Attempts  int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives completed-call events for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// NoopObserver drops every event.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes call events to w, one structured line per call.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{logger: slog.New(slog.NewTextHandler(w, nil))}
}

func (o *logObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"task", string(event.Task),
		"model", event.Model,
		"attempts", event.Attempts,
		"latency_ms", event.LatencyMs,
	}
	if event.Success {
		o.logger.Info("llm_call", attrs...)
		return
	}
	o.logger.Error("llm_call", append(attrs, "error_code", event.ErrorCode)...)
}
