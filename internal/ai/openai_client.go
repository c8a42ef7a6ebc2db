package ai

import (
	"context"
	"errors"
	"log"
	"math"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient() *OpenAIClient {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY not set")
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// GetReply sends one system prompt + JSON envelope pair and returns the raw
// model text. One shot, no retries, no streaming.
func (c *OpenAIClient) GetReply(
	ctx context.Context,
	systemPrompt string,
	inputJSON string,
) (string, error) {

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: inputJSON},
		},
		// Pinned to zero; a literal 0 would be dropped by omitempty and
		// fall back to the API default.
		Temperature: math.SmallestNonzeroFloat32,
	})
	if err != nil {
		log.Println("[ai] OpenAI error:", err)
		return "", err
	}

	if len(resp.Choices) == 0 {
		log.Println("[ai] empty choices")
		return "", errors.New("ai: empty completion")
	}

	raw := resp.Choices[0].Message.Content

	log.Println("[ai] RAW MODEL RESPONSE >>>")
	log.Println(raw)
	log.Println("<<< END MODEL RESPONSE")

	return raw, nil
}
