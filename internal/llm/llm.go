// Package llm provides the completion providers used by transcript
// extraction. The provider is an opaque collaborator: prompt in, text out.
package llm

import "context"

// Request describes a single completion call.
type Request struct {
	// System is the system prompt.
	System string
	// Prompt is the user message.
	Prompt string
	// Temperature controls sampling. Extraction pins this low.
	Temperature float64
	// MaxTokens caps the reply length. Zero uses the provider default.
	MaxTokens int
	// JSONMode requests a JSON-object reply where the provider supports it.
	JSONMode bool
}

// Completer issues one completion per call. Implementations perform no
// retries beyond what their SDK does internally.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}
