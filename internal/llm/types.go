package llm

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no model credentials are available.
var ErrNotConfigured = errors.New("no model configured")

type Provider interface {
	// Analyze sends a prompt, with an optional inline image, and returns the
	// model's text answer
	Analyze(ctx context.Context, prompt string, opts ...Option) (*Response, error)
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
	Image       *Image
}

// Image is an inline image attached to the prompt.
type Image struct {
	Data     []byte
	MIMEType string
}

func WithImage(data []byte, mimeType string) Option {
	return func(o *Options) {
		if len(data) == 0 {
			return
		}
		o.Image = &Image{Data: data, MIMEType: mimeType}
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		if model != "" {
			o.Model = model
		}
	}
}

type Response struct {
	Content string
	Usage   Usage
}
