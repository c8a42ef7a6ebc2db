package ai

import "context"

// AI — the upstream model. Knows nothing about intake state or storage.
type AI interface {
	GetReply(
		ctx context.Context,
		systemPrompt string,
		inputJSON string,
	) (string, error)
}
