package narrator

import (
	"context"
	"fmt"
	"strings"

	"MoonPulse/internal/domain/models"
	drepo "MoonPulse/internal/domain/repository"
	"MoonPulse/internal/oracle"
	xlogger "MoonPulse/pkg/logger"

	openai "github.com/sashabaranov/go-openai"
)

const maxNarrativeChars = 200

const promptTemplate = "You are a cryptic market oracle. In at most 200 characters, " +
	"write a short mystical observation about %s (RSI %d) under a %s moon " +
	"(%s tier) embodying the %s archetype. Include exactly one quoted sentence."

// Client implements a Narrator over the OpenAI chat-completion API. It never
// returns an error: missing key or any collaborator failure falls back to the
// deterministic template.
type Client struct {
	api    *openai.Client
	model  string
	logger *xlogger.Logger
}

// New creates a Narrator. An empty API key yields a template-only narrator.
func New(apiKey, model string, logger *xlogger.Logger) drepo.Narrator {
	c := &Client{model: model, logger: logger}
	if apiKey != "" {
		c.api = openai.NewClient(apiKey)
	}
	if c.model == "" {
		c.model = openai.GPT4oMini
	}
	return c
}

func (c *Client) fallback(symbol string, rsi int, lunar models.LunarSignal, archetype models.Archetype) (string, string) {
	return oracle.QuoteFor(archetype), oracle.FallbackNarrative(symbol, rsi, lunar, archetype)
}

// Narrate requests a short completion and splits out the quoted sentence. A
// response without one becomes the whole narrative with the default quote.
func (c *Client) Narrate(ctx context.Context, symbol string, rsi int, lunar models.LunarSignal, archetype models.Archetype) (string, string) {
	if c.api == nil {
		return c.fallback(symbol, rsi, lunar, archetype)
	}

	prompt := fmt.Sprintf(promptTemplate, symbol, rsi, lunar.Phase, lunar.Pattern.Tier, archetype)
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: 120,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		if err != nil && c.logger != nil {
			c.logger.Warn("narrator completion failed", xlogger.Error(err))
		}
		return c.fallback(symbol, rsi, lunar, archetype)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if runes := []rune(text); len(runes) > maxNarrativeChars {
		text = string(runes[:maxNarrativeChars])
	}
	if text == "" {
		return c.fallback(symbol, rsi, lunar, archetype)
	}

	quote, narrative, ok := oracle.SplitQuoted(text)
	if !ok {
		return oracle.DefaultQuote(), narrative
	}
	return quote, narrative
}
