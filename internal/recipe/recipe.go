package recipe

import (
	"context"
	"fmt"
	"time"

	"plan-my-meal/internal/llm"
	"plan-my-meal/internal/shared"
)

// Generate asks the text model for step-by-step instructions for a named
// dish. The answer is returned verbatim; there is no structure to parse
// and no retry. Failures propagate so the caller can show a message and
// offer manual re-invocation.
func Generate(ctx context.Context, textGen llm.TextGenerator, mealName string) (string, shared.CallMeta, error) {
	prompt := fmt.Sprintf(`Provide a step-by-step recipe for "%s". Include ingredients, cooking time, and detailed instructions in a clear format.`, mealName)

	start := time.Now()
	resp, err := textGen.GenerateContent(ctx, prompt)
	meta := shared.CallMeta{
		Operation: "recipe",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}
	if err != nil {
		return "", meta, fmt.Errorf("failed to generate recipe: %w", err)
	}
	if resp.Content == "" {
		return "", meta, fmt.Errorf("no recipe generated")
	}

	return resp.Content, meta, nil
}
