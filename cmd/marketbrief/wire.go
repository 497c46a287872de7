package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/newthinker/marketbrief/internal/archive"
	"github.com/newthinker/marketbrief/internal/config"
	"github.com/newthinker/marketbrief/internal/llm/factory"
	"github.com/newthinker/marketbrief/internal/market"
	"github.com/newthinker/marketbrief/internal/market/yahoo"
	"github.com/newthinker/marketbrief/internal/metrics"
	"github.com/newthinker/marketbrief/internal/news"
	"github.com/newthinker/marketbrief/internal/news/newsapi"
	"github.com/newthinker/marketbrief/internal/pipeline"
	"github.com/newthinker/marketbrief/internal/prompt"
	"github.com/newthinker/marketbrief/internal/summarize"
)

// loadConfig resolves the config file flag, falling back to defaults.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Warn("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// buildPipeline wires the providers, summarizer and archive from config.
// Both the one-shot brief command and the server share this assembly.
func buildPipeline(cfg *config.Config, registry *metrics.Registry, log *zap.Logger) (*pipeline.Pipeline, error) {
	var newsProvider news.Provider = newsapi.New(news.Config{
		APIKey:   cfg.News.APIKey,
		BaseURL:  cfg.News.BaseURL,
		Language: cfg.News.Language,
	})
	var marketProvider market.Provider = yahoo.New(market.Config{
		BaseURL:  cfg.Market.BaseURL,
		Adjusted: cfg.Market.Adjusted,
	})

	if cfg.Cache.Enabled {
		newsProvider = news.NewCachedProvider(newsProvider, cfg.Cache.NewsTTL)
		marketProvider = market.NewCachedProvider(marketProvider, cfg.Cache.MarketTTL)
	}

	llmProvider, err := factory.New(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("creating llm provider: %w", err)
	}
	var summarizer *summarize.Summarizer
	if llmProvider != nil {
		summarizer = summarize.New(llmProvider, summarize.Config{
			MaxTokens:   cfg.Pipeline.MaxTokens,
			Temperature: cfg.Pipeline.Temperature,
		})
		log.Info("llm provider configured", zap.String("provider", llmProvider.Name()))
	} else {
		log.Info("no llm provider configured, summaries disabled")
	}

	var archiver *archive.Archiver
	if cfg.Archive.Enabled {
		storage, err := buildStorage(cfg.Archive)
		if err != nil {
			return nil, fmt.Errorf("creating archive storage: %w", err)
		}
		archiver = archive.NewArchiver(storage)
	}

	builder := prompt.NewBuilder()
	builder.MaxChars = cfg.Pipeline.MaxPromptChars

	return pipeline.New(
		newsProvider,
		marketProvider,
		summarizer,
		builder,
		archiver,
		registry,
		log,
		pipeline.Config{
			MaxHeadlines: cfg.News.MaxHeadlines,
			Days:         cfg.Market.Days,
		},
	), nil
}

func buildStorage(cfg config.ArchiveConfig) (archive.Storage, error) {
	switch cfg.Type {
	case "s3":
		return archive.NewS3(archive.S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
	default:
		path := cfg.Path
		if path == "" {
			path = "data/archive"
		}
		return archive.NewLocalFS(path)
	}
}
