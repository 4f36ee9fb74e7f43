package tui

import (
	"context"
	"time"

	"hws_news/internal/feed"
	"hws_news/internal/fetcher"
	"hws_news/internal/models"
	"hws_news/internal/reltime"
)

// Loader выполняет один проход загрузки и слияния, сообщая о каждом слиянии.
type Loader interface {
	Run(ctx context.Context, onUpdate func(feed.Update)) ([]models.NewsItem, error)
}

// ImageProber загружает миниатюру настолько, чтобы её описать.
type ImageProber interface {
	FetchImage(ctx context.Context, rawURL string) (fetcher.ImageInfo, error)
}

type Deps struct {
	Title     string
	Loader    Loader
	Images    ImageProber
	Formatter *reltime.Formatter
	OpenURL   func(rawURL string) error
	Now       func() time.Time
}
