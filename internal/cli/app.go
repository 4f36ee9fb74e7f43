package cli

import (
	"hws_news/internal/config"
	"hws_news/internal/feed"
	"hws_news/internal/fetcher"
	"hws_news/internal/metrics"
	"hws_news/internal/reltime"
)

// app содержит всё, что нужно командам. Собирается один раз из конфигурации.
type app struct {
	cfg       *config.Config
	client    *fetcher.Client
	formatter *reltime.Formatter
}

func newApp(cfg *config.Config) (*app, error) {
	f, err := reltime.New(cfg.Locale)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:       cfg,
		client:    fetcher.NewClient(cfg.Timeout(), cfg.FeedPattern),
		formatter: f,
	}, nil
}

func (a *app) aggregator(m *metrics.Metrics) *feed.Aggregator {
	opts := []feed.Option{feed.WithMetrics(m)}
	if a.cfg.ContinueOnError {
		opts = append(opts, feed.WithPolicy(feed.ContinueOnError))
	}
	return feed.NewAggregator(a.client, a.cfg.PageNumbers(), opts...)
}
