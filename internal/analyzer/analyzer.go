package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sozercan/prodsight/apimodels"
	"github.com/sozercan/prodsight/internal/assembler"
	"github.com/sozercan/prodsight/internal/fallback"
	"github.com/sozercan/prodsight/internal/llm"
	"github.com/sozercan/prodsight/internal/parser"
	"github.com/sozercan/prodsight/internal/prompts"
	"github.com/sozercan/prodsight/internal/store"
)

type Options struct {
	// Per call model timeout; zero means none
	ModelTimeout time.Duration
	// Model name per mode; modes not listed use the provider default
	Models       map[apimodels.AnalysisMode]string
	BatchWorkers int
	MaxBatchSize int
}

type Analyzer struct {
	llmProvider llm.Provider
	catalog     *prompts.Catalog
	assembler   *assembler.Assembler
	summaries   store.SummaryStore
	opts        Options
}

func New(llmProvider llm.Provider, catalog *prompts.Catalog, asm *assembler.Assembler, summaries store.SummaryStore, opts Options) *Analyzer {
	if opts.BatchWorkers < 1 {
		opts.BatchWorkers = 1
	}
	return &Analyzer{
		llmProvider: llmProvider,
		catalog:     catalog,
		assembler:   asm,
		summaries:   summaries,
		opts:        opts,
	}
}

// call is one pass through prompt, model, parser and assembler.
type call struct {
	mode     apimodels.AnalysisMode
	prompt   prompts.Context
	image    *llm.Image
	fallback func() any
}

func (a *Analyzer) run(ctx context.Context, c call) (*apimodels.AnalysisResponse, error) {
	requestID := RequestID(ctx)
	slog.Info("Starting analysis", "mode", c.mode, "requestId", requestID, "image", c.image != nil)

	resp := &apimodels.AnalysisResponse{
		Success:   true,
		Mode:      c.mode,
		Source:    apimodels.SourceModel,
		RequestID: requestID,
	}

	prompt, err := a.catalog.For(c.mode).Render(c.prompt)
	if err != nil {
		return nil, err
	}

	value, err := a.callModel(ctx, c.mode, prompt, c.image)
	var failure *parser.Failure
	switch {
	case err == nil:
	case errors.Is(err, llm.ErrNotConfigured):
		slog.Debug("No model configured, using fallback", "mode", c.mode, "requestId", requestID)
		value = c.fallback()
		resp.Source = apimodels.SourceFallback
		resp.Note = fallback.Note
	case errors.As(err, &failure):
		slog.Warn("Model response could not be parsed, using fallback", "mode", c.mode, "requestId", requestID, "error", failure.Err)
		value = c.fallback()
		resp.Source = apimodels.SourceFallback
		resp.Note = fallback.Note
		resp.ParseError = &apimodels.ParseError{
			Success:     false,
			Error:       failure.Err.Error(),
			RawResponse: failure.RawResponse,
		}
	default:
		slog.Error("Model call failed", "mode", c.mode, "requestId", requestID, "error", err)
		return nil, &ModelError{Mode: c.mode, Err: err}
	}

	result, err := a.assembler.Assemble(c.mode, value)
	if err != nil {
		return nil, fmt.Errorf("assembling %s result: %w", c.mode, err)
	}
	if len(result.Warnings) > 0 {
		slog.Debug("Schema policy replaced fields", "mode", c.mode, "requestId", requestID, "warnings", result.Warnings)
	}

	resp.Analysis = result.Analysis
	resp.ProcessingTimeMS = result.ProcessingTimeMS
	resp.Reasoning = result.Reasoning
	resp.Warnings = result.Warnings
	slog.Info("Analysis completed", "mode", c.mode, "requestId", requestID, "source", resp.Source)
	return resp, nil
}

// callModel returns the parsed model answer. The call is detached from the
// caller's cancellation so a client disconnect does not abort it.
func (a *Analyzer) callModel(ctx context.Context, mode apimodels.AnalysisMode, prompt string, image *llm.Image) (any, error) {
	callCtx := context.WithoutCancel(ctx)
	if a.opts.ModelTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(callCtx, a.opts.ModelTimeout)
		defer cancel()
	}

	opts := []llm.Option{llm.WithModel(a.opts.Models[mode])}
	if image != nil {
		opts = append(opts, llm.WithImage(image.Data, image.MIMEType))
	}

	llmResp, err := a.llmProvider.Analyze(callCtx, prompt, opts...)
	if err != nil {
		return nil, err
	}
	slog.Debug("Model responded", "mode", mode, "tokens", llmResp.Usage.TotalTokens)

	return parser.Parse(llmResp.Content)
}

func (a *Analyzer) Screenshot(ctx context.Context, req apimodels.ScreenshotRequest) (*apimodels.AnalysisResponse, error) {
	if req.ImageBase64 == "" {
		return nil, missing("imageBase64")
	}
	return a.screenshot(ctx, req, "imageBase64")
}

func (a *Analyzer) screenshot(ctx context.Context, req apimodels.ScreenshotRequest, field string) (*apimodels.AnalysisResponse, error) {
	img, err := decodeImage(field, req.ImageBase64, req.MimeType)
	if err != nil {
		return nil, err
	}

	mode := req.AnalysisType.Resolve()
	if !mode.Screenshot() {
		mode = apimodels.ModeFull
	}

	return a.run(ctx, call{
		mode:     mode,
		prompt:   prompts.Context{WindowInfo: req.WindowInfo, HasImage: true},
		image:    img,
		fallback: func() any { return fallback.Screenshot(mode, req.WindowInfo) },
	})
}

// Batch analyzes every item with at most BatchWorkers model calls in flight.
// Results keep the order of the items.
func (a *Analyzer) Batch(ctx context.Context, req apimodels.BatchRequest) (*apimodels.BatchResponse, error) {
	if len(req.Items) == 0 {
		return nil, missing("items")
	}
	if a.opts.MaxBatchSize > 0 && len(req.Items) > a.opts.MaxBatchSize {
		return nil, &ValidationError{Field: "items", Message: fmt.Sprintf("at most %d items per batch", a.opts.MaxBatchSize)}
	}
	for i, item := range req.Items {
		if item.ImageBase64 == "" {
			return nil, missing(fmt.Sprintf("items[%d].imageBase64", i))
		}
	}

	batchID := RequestID(ctx)
	results := make([]*apimodels.AnalysisResponse, len(req.Items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.BatchWorkers)
	for i, item := range req.Items {
		g.Go(func() error {
			itemCtx := WithRequestID(gctx, fmt.Sprintf("%s-%d", batchID, i))
			resp, err := a.screenshot(itemCtx, item, fmt.Sprintf("items[%d].imageBase64", i))
			if err != nil {
				return err
			}
			results[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &apimodels.BatchResponse{Success: true, Results: results}, nil
}

func (a *Analyzer) Click(ctx context.Context, req apimodels.ClickRequest) (*apimodels.AnalysisResponse, error) {
	if req.ClickCoordinates == nil {
		return nil, missing("clickCoordinates")
	}
	img, err := decodeImage("imageBase64", req.ImageBase64, req.MimeType)
	if err != nil {
		return nil, err
	}

	return a.run(ctx, call{
		mode: apimodels.ModeClickIntelligence,
		prompt: prompts.Context{
			WindowInfo:     req.WindowInfo,
			GoalContext:    req.GoalContext,
			Click:          req.ClickCoordinates,
			NearbyElements: req.NearbyElements,
			GoalOriented:   req.GoalOriented(),
			HasImage:       img != nil,
		},
		image:    img,
		fallback: func() any { return fallback.Click(req) },
	})
}

// Session analyzes a work session. With a userId the previous summary is
// quoted in the prompt and the new model summary replaces it.
func (a *Analyzer) Session(ctx context.Context, req apimodels.SessionRequest) (*apimodels.AnalysisResponse, error) {
	if req.SessionData == nil {
		return nil, missing("sessionData")
	}

	var prior string
	if req.UserID != "" && a.summaries != nil {
		s, ok, err := a.summaries.LatestSummary(ctx, req.UserID)
		if err != nil {
			slog.Warn("Failed to load prior session summary", "userId", req.UserID, "error", err)
		} else if ok {
			prior = s
		}
	}

	resp, err := a.run(ctx, call{
		mode: apimodels.ModeSessionIntelligence,
		prompt: prompts.Context{
			GoalContext:  req.GoalContext,
			SessionData:  req.SessionData,
			PriorSummary: prior,
		},
		fallback: func() any { return fallback.Session() },
	})
	if err != nil {
		return nil, err
	}

	if req.UserID != "" && a.summaries != nil && resp.Source == apimodels.SourceModel {
		if insight, ok := resp.Analysis.(*apimodels.SessionInsight); ok && insight.Summary != "" {
			if err := a.summaries.SaveSummary(ctx, req.UserID, insight.Summary); err != nil {
				slog.Warn("Failed to save session summary", "userId", req.UserID, "error", err)
			}
		}
	}
	return resp, nil
}

func (a *Analyzer) Progress(ctx context.Context, req apimodels.ProgressRequest) (*apimodels.AnalysisResponse, error) {
	if req.TextContent == "" && req.ImageBase64 == "" {
		return nil, &ValidationError{Field: "textContent", Message: "textContent or imageBase64 is required"}
	}
	img, err := decodeImage("imageBase64", req.ImageBase64, req.MimeType)
	if err != nil {
		return nil, err
	}

	return a.run(ctx, call{
		mode: apimodels.ModeProgressIndicators,
		prompt: prompts.Context{
			GoalContext: req.GoalContext,
			TextContent: req.TextContent,
			HasImage:    img != nil,
		},
		image:    img,
		fallback: func() any { return fallback.Progress(req.TextContent) },
	})
}

type requestIDKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the ID stored in ctx, or a fresh one.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
