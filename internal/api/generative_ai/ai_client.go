package generativeAI

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tripgenie/tripgenie/app/observability/metrics"
	"github.com/tripgenie/tripgenie/config"
)

// APIKeyEnv is the environment variable holding the OpenRouter API key.
// A missing key is a configuration failure and fatal at startup.
const APIKeyEnv = "OPENROUTER_API_KEY"

// AIClient wraps an OpenAI-compatible chat-completions endpoint. One prompt
// in, the raw completion text out; parsing the reply is the caller's concern.
type AIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

func NewAIClient(cfg *config.Config) (*AIClient, error) {
	apiKey := os.Getenv(APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("%s environment variable is not set", APIKeyEnv)
	}

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = cfg.AI.BaseURL

	return &AIClient{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.AI.Model,
		temperature: cfg.AI.Temperature,
		maxTokens:   cfg.AI.MaxTokens,
	}, nil
}

// GenerateResponse performs one blocking completion call and returns the raw
// reply text, trimmed. The reply may still carry markdown code fences.
func (ai *AIClient) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateResponse", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("model", ai.model),
	))
	defer span.End()

	start := time.Now()
	resp, err := ai.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: ai.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: ai.temperature,
		MaxTokens:   ai.maxTokens,
	})
	metrics.Get().AICallDurationSeconds.Record(ctx, time.Since(start).Seconds())

	if err != nil {
		metrics.Get().AICallErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Completion call failed")
		return "", fmt.Errorf("error generating itinerary: %w", err)
	}

	if len(resp.Choices) == 0 {
		metrics.Get().AICallErrorsTotal.Add(ctx, 1)
		err := fmt.Errorf("completion returned no choices")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty completion")
		return "", err
	}

	span.SetStatus(codes.Ok, "Completion received")
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
