package models

import "time"

// Generation is one usage-log row: the metadata of a single endpoint call.
// Prompt and completion text are never stored.
type Generation struct {
	ID           int64     `json:"id"`
	RequestID    string    `json:"request_id"`
	Endpoint     string    `json:"endpoint"`
	Provider     string    `json:"provider,omitempty"`
	Model        string    `json:"model,omitempty"`
	Status       int       `json:"status"`
	ErrorKind    string    `json:"error_kind,omitempty"`
	DurationMS   int64     `json:"duration_ms"`
	InputTokens  int       `json:"input_tokens"`
	OutputTokens int       `json:"output_tokens"`
	CreatedAt    time.Time `json:"created_at"`
}

// EndpointUsage aggregates usage-log rows for one endpoint.
type EndpointUsage struct {
	Endpoint      string  `json:"endpoint"`
	Calls         int     `json:"calls"`
	Failures      int     `json:"failures"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
	InputTokens   int     `json:"input_tokens"`
	OutputTokens  int     `json:"output_tokens"`
}
