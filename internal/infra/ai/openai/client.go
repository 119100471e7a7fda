package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domai "github.com/bryanwahyu/startup-radar/internal/domain/ai"
	"github.com/bryanwahyu/startup-radar/internal/infra/ai/prompt"
	"github.com/bryanwahyu/startup-radar/internal/middleware"
	"github.com/sashabaranov/go-openai"
)

const maxTokens = 1024

type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

// Validate sends one (startup, candidate) pair and parses the verdict out
// of whatever the model wrapped around it.
func (c *Client) Validate(ctx context.Context, vr domai.Request) (domai.Verdict, error) {
	model := c.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(vr)},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	middleware.IncrementValidatorCalls()
	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		middleware.IncrementValidatorFailures()
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
			return domai.Verdict{}, domai.ErrQuotaExceeded
		}
		return domai.Verdict{}, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		middleware.IncrementValidatorFailures()
		return domai.Verdict{}, domai.ErrUnparsable
	}
	return prompt.ParseVerdict(resp.Choices[0].Message.Content)
}
