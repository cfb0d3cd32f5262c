package interfaces

import "context"

// TextCompleter is the language-model oracle: one prompt in, free text out.
// Implementations are stateless between calls; each call is independent.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
