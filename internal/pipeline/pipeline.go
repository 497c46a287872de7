// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/newthinker/marketbrief/internal/archive"
	"github.com/newthinker/marketbrief/internal/core"
	"github.com/newthinker/marketbrief/internal/market"
	"github.com/newthinker/marketbrief/internal/metrics"
	"github.com/newthinker/marketbrief/internal/news"
	"github.com/newthinker/marketbrief/internal/prompt"
	"github.com/newthinker/marketbrief/internal/report"
	"github.com/newthinker/marketbrief/internal/summarize"
)

// Config controls how a brief is assembled.
type Config struct {
	MaxHeadlines int
	Days         int
}

// Pipeline composes the news, market, prompt and summarization stages
// into a single brief. A stage failure degrades that stage's output and
// is recorded in the brief notes; later stages still run.
type Pipeline struct {
	newsProvider   news.Provider
	marketProvider market.Provider
	summarizer     *summarize.Summarizer
	promptBuilder  *prompt.Builder
	archiver       *archive.Archiver
	registry       *metrics.Registry
	logger         *zap.Logger
	cfg            Config
}

func New(
	newsProvider news.Provider,
	marketProvider market.Provider,
	summarizer *summarize.Summarizer,
	promptBuilder *prompt.Builder,
	archiver *archive.Archiver,
	registry *metrics.Registry,
	logger *zap.Logger,
	cfg Config,
) *Pipeline {
	if cfg.MaxHeadlines <= 0 {
		cfg.MaxHeadlines = news.DefaultMaxHeadlines
	}
	if cfg.Days <= 0 {
		cfg.Days = 5
	}
	if promptBuilder == nil {
		promptBuilder = prompt.NewBuilder()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		newsProvider:   newsProvider,
		marketProvider: marketProvider,
		summarizer:     summarizer,
		promptBuilder:  promptBuilder,
		archiver:       archiver,
		registry:       registry,
		logger:         logger,
		cfg:            cfg,
	}
}

// Run builds a complete brief for the ticker. It never returns an error
// for provider failures; those degrade to empty sections with a note.
func (p *Pipeline) Run(ctx context.Context, ticker, query string) *core.Brief {
	start := time.Now()

	brief := &core.Brief{
		ID:          uuid.New().String(),
		Ticker:      ticker,
		Query:       query,
		GeneratedAt: time.Now().UTC(),
	}

	brief.Headlines = p.fetchHeadlines(ctx, query, brief)
	series := p.fetchSeries(ctx, ticker, brief)
	brief.Report = report.Build(series, ticker)

	promptText := p.promptBuilder.Build(brief.Headlines, brief.Report, ticker)
	brief.PromptChars = len(promptText)

	p.summarizeBrief(ctx, promptText, brief)
	p.archiveBrief(ctx, brief)

	status := "ok"
	if len(brief.Notes) > 0 {
		status = "degraded"
	}
	p.registry.RecordBrief(status, time.Since(start).Seconds())

	p.logger.Info("brief generated",
		zap.String("id", brief.ID),
		zap.String("ticker", ticker),
		zap.Int("headlines", len(brief.Headlines)),
		zap.Int("prompt_chars", brief.PromptChars),
		zap.Strings("notes", brief.Notes),
		zap.Duration("elapsed", time.Since(start)))

	return brief
}

func (p *Pipeline) fetchHeadlines(ctx context.Context, query string, brief *core.Brief) []core.Headline {
	if p.newsProvider == nil {
		brief.Notes = append(brief.Notes, "news provider not configured")
		return nil
	}
	headlines, err := p.newsProvider.FetchHeadlines(ctx, query, p.cfg.MaxHeadlines)
	if err != nil {
		p.registry.RecordProviderRequest(p.newsProvider.Name(), "error")
		p.logger.Warn("news fetch failed", zap.String("query", query), zap.Error(err))
		brief.Notes = append(brief.Notes, fmt.Sprintf("news unavailable: %v", err))
		return nil
	}
	p.registry.RecordProviderRequest(p.newsProvider.Name(), "ok")
	return headlines
}

func (p *Pipeline) fetchSeries(ctx context.Context, ticker string, brief *core.Brief) core.PriceSeries {
	if p.marketProvider == nil {
		brief.Notes = append(brief.Notes, "market provider not configured")
		return nil
	}
	series, err := p.marketProvider.FetchRecent(ctx, ticker, p.cfg.Days)
	if err != nil {
		p.registry.RecordProviderRequest(p.marketProvider.Name(), "error")
		p.logger.Warn("market fetch failed", zap.String("ticker", ticker), zap.Error(err))
		brief.Notes = append(brief.Notes, fmt.Sprintf("stock data unavailable: %v", err))
		return nil
	}
	p.registry.RecordProviderRequest(p.marketProvider.Name(), "ok")
	return series
}

func (p *Pipeline) summarizeBrief(ctx context.Context, promptText string, brief *core.Brief) {
	if p.summarizer == nil || !p.summarizer.Configured() {
		brief.Summary = summarize.NotConfiguredSentinel
		return
	}
	summary, usage := p.summarizer.Summarize(ctx, promptText)
	brief.Summary = summary
	p.registry.RecordLLMTokens(usage.InputTokens, usage.OutputTokens)
}

func (p *Pipeline) archiveBrief(ctx context.Context, brief *core.Brief) {
	if p.archiver == nil {
		return
	}
	path, err := p.archiver.Save(ctx, brief)
	if err != nil {
		p.registry.RecordArchive("error")
		p.logger.Warn("archive failed", zap.String("id", brief.ID), zap.Error(err))
		brief.Notes = append(brief.Notes, fmt.Sprintf("archive failed: %v", err))
		return
	}
	p.registry.RecordArchive("ok")
	p.logger.Debug("brief archived", zap.String("path", path))
}
