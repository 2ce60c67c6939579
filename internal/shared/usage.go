package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by a generation call.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// CallMeta holds operational metadata for a single generation call.
type CallMeta struct {
	Operation string
	Usage     TokenUsage
	Latency   time.Duration
}
