package llm

import "context"

type Provider interface {
	Generate(ctx context.Context, query string, excerpts []string) (string, error)
}
