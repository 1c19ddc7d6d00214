package llm

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"

	"github.com/sozercan/prodsight/internal/config"
)

const systemPrompt = "You are a productivity analyst. You read screenshots and activity data and answer only with the JSON object requested."

// OpenAI client implementation
type OpenAI struct {
	client      *openai.Client
	cfg         config.OpenAIConfig
	temperature float64
	maxTokens   int64
}

func NewOpenAI(cfg config.LLMConfig) (*OpenAI, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, ErrNotConfigured
	}

	var client *openai.Client
	switch cfg.OpenAI.Provider {
	case "azure":
		client = openai.NewClient(
			azure.WithEndpoint(cfg.OpenAI.APIEndpoint, cfg.OpenAI.APIVersion),
			azure.WithAPIKey(cfg.OpenAI.APIKey),
		)
	default: // "openai"
		client = openai.NewClient(
			option.WithAPIKey(cfg.OpenAI.APIKey),
			option.WithBaseURL(cfg.OpenAI.APIEndpoint),
		)
	}

	return &OpenAI{
		client:      client,
		cfg:         cfg.OpenAI,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

func (o *OpenAI) model() string {
	if o.cfg.Provider == "azure" {
		return o.cfg.DeploymentName
	}
	return o.cfg.Model
}

func (o *OpenAI) Analyze(ctx context.Context, prompt string, opts ...Option) (*Response, error) {
	options := &Options{
		Model:       o.model(),
		Temperature: o.temperature,
		MaxTokens:   o.maxTokens,
	}
	for _, opt := range opts {
		opt(options)
	}

	user := openai.UserMessage(prompt)
	if options.Image != nil {
		user = openai.UserMessageParts(
			openai.TextPart(prompt),
			openai.ImagePart(dataURL(options.Image)),
		)
	}

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.F(options.Model),
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			user,
		}),
		Temperature: openai.F(options.Temperature),
		MaxTokens:   openai.F(options.MaxTokens),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai returned no choices")
	}

	return &Response{
		Content: resp.Choices[0].Message.Content,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func dataURL(img *Image) string {
	mime := img.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}
