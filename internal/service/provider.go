package service

import "context"

// CompletionProvider sends a prompt to a generative-AI completion endpoint
// configured for JSON output and returns the raw response text. The response
// is untrusted: callers must validate it against their own contract.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}
