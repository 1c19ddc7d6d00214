package llm

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sozercan/prodsight/internal/config"
)

// Lazy is the process-wide model capability. The underlying client is built
// on first use and reused afterwards. A failed build is retried by the next
// call; without credentials every call returns ErrNotConfigured.
type Lazy struct {
	cfg   config.LLMConfig
	build func(context.Context, config.LLMConfig) (Provider, error)

	mu       sync.Mutex
	provider Provider
}

func NewLazy(cfg config.LLMConfig) *Lazy {
	return &Lazy{cfg: cfg, build: buildProvider}
}

// ProviderName reports which backend will serve calls, or "" when none can.
func (l *Lazy) ProviderName() string {
	return selectProvider(l.cfg)
}

func (l *Lazy) Configured() bool {
	return l.ProviderName() != ""
}

func (l *Lazy) Analyze(ctx context.Context, prompt string, opts ...Option) (*Response, error) {
	p, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return p.Analyze(ctx, prompt, opts...)
}

func (l *Lazy) get(ctx context.Context) (Provider, error) {
	if !l.Configured() {
		return nil, ErrNotConfigured
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.provider != nil {
		return l.provider, nil
	}

	// Client setup must outlive the request that triggered it.
	p, err := l.build(context.WithoutCancel(ctx), l.cfg)
	if err != nil {
		slog.Warn("model provider unavailable", "error", err)
		return nil, err
	}
	l.provider = p
	slog.Info("model provider initialized", "provider", l.ProviderName())
	return p, nil
}

func selectProvider(cfg config.LLMConfig) string {
	switch cfg.Provider {
	case "gemini":
		if cfg.Gemini.APIKey != "" {
			return "gemini"
		}
	case "openai":
		if cfg.OpenAI.APIKey != "" {
			return "openai"
		}
	default:
		if cfg.Gemini.APIKey != "" {
			return "gemini"
		}
		if cfg.OpenAI.APIKey != "" {
			return "openai"
		}
	}
	return ""
}

func buildProvider(ctx context.Context, cfg config.LLMConfig) (Provider, error) {
	switch selectProvider(cfg) {
	case "gemini":
		return NewGemini(ctx, cfg)
	case "openai":
		return NewOpenAI(cfg)
	}
	return nil, ErrNotConfigured
}
