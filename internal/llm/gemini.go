package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/sozercan/prodsight/internal/config"
)

// Gemini calls the Gemini API with the prompt and inline image bytes.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float64
	maxTokens   int64
}

func NewGemini(ctx context.Context, cfg config.LLMConfig) (*Gemini, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Gemini{
		client:      client,
		model:       cfg.Gemini.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

func (g *Gemini) Analyze(ctx context.Context, prompt string, opts ...Option) (*Response, error) {
	options := &Options{
		Model:       g.model,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	}
	for _, opt := range opts {
		opt(options)
	}

	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	if options.Image != nil {
		parts = append(parts, genai.NewPartFromBytes(options.Image.Data, options.Image.MIMEType))
	}

	resp, err := g.client.Models.GenerateContent(ctx,
		options.Model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(float32(options.Temperature)),
			MaxOutputTokens: int32(options.MaxTokens),
		},
	)
	if err != nil {
		return nil, err
	}

	out := &Response{Content: resp.Text()}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = Usage{
			PromptTokens:     int64(u.PromptTokenCount),
			CompletionTokens: int64(u.CandidatesTokenCount),
			TotalTokens:      int64(u.TotalTokenCount),
		}
	}
	return out, nil
}
