// Package feed параллельно загружает все страницы ленты и сводит их
// в одну коллекцию, отсортированную по дате публикации.
package feed

import (
	"context"
	"errors"
	"fmt"
	"hws_news/internal/fetcher"
	"hws_news/internal/logger"
	"hws_news/internal/metrics"
	"hws_news/internal/models"
	"time"

	"golang.org/x/sync/errgroup"
)

// PageSource загружает одну страницу ленты по номеру.
type PageSource interface {
	FetchPage(ctx context.Context, page int) ([]models.NewsItem, error)
}

// Update отправляется после каждой объединённой страницы. Items содержит
// отсортированную копию всей полученной коллекции, её можно хранить.
type Update struct {
	Page  int
	Added int
	Items []models.NewsItem
}

// Policy определяет поведение при ошибке загрузки страницы.
type Policy int

const (
	// FailFast прекращает слияние на первой ошибке и отменяет остальные загрузки.
	FailFast Policy = iota
	// ContinueOnError логирует ошибку страницы и продолжает слияние остальных.
	ContinueOnError
)

// PageError связывает ошибку загрузки с номером страницы.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

type Aggregator struct {
	source  PageSource
	pages   []int
	policy  Policy
	metrics *metrics.Metrics
	log     *logger.Entry
}

type Option func(*Aggregator)

// WithPolicy задаёт политику ошибок. По умолчанию FailFast.
func WithPolicy(p Policy) Option {
	return func(a *Aggregator) { a.policy = p }
}

// WithMetrics включает учёт загрузок и размера коллекции.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Aggregator) { a.metrics = m }
}

// NewAggregator создаёт агрегатор для заданных номеров страниц.
func NewAggregator(source PageSource, pages []int, opts ...Option) *Aggregator {
	a := &Aggregator{
		source: source,
		pages:  append([]int(nil), pages...),
		log:    logger.Log.WithField("service", "aggregator"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type pageResult struct {
	page  int
	items []models.NewsItem
	err   error
}

// Run параллельно загружает все страницы и объединяет результаты по мере поступления.
// onUpdate (может быть nil) вызывается в горутине вызывающего после каждого слияния.
//
// Run возвращает объединённые новости и ошибку, остановившую загрузку.
// Новости, объединённые до ошибки, возвращаются всегда.
func (a *Aggregator) Run(ctx context.Context, onUpdate func(Update)) ([]models.NewsItem, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group
	results := make(chan pageResult)

	for _, page := range a.pages {
		g.Go(func() error {
			items, err := a.fetch(runCtx, page)
			select {
			case results <- pageResult{page: page, items: items, err: err}:
			case <-runCtx.Done():
			}
			return nil
		})
	}

	go func() {
		g.Wait()
		close(results)
	}()

	var (
		merged    []models.NewsItem
		failed    []error
		firstErr  error
		processed int
	)
	for res := range results {
		// после остановки или отмены только вычитываем канал
		if firstErr != nil || ctx.Err() != nil {
			continue
		}
		processed++

		if res.err != nil {
			pe := &PageError{Page: res.page, Err: res.err}
			a.logFailure(pe)
			if a.policy == FailFast {
				firstErr = pe
				cancel()
				continue
			}
			failed = append(failed, pe)
			continue
		}

		merged = Merge(merged, res.items)
		a.metrics.SetMerged(len(merged))
		a.log.WithFields(logger.Fields{
			"page":  res.page,
			"added": len(res.items),
			"total": len(merged),
		}).Debug("Page merged")

		if onUpdate != nil {
			onUpdate(Update{
				Page:  res.page,
				Added: len(res.items),
				Items: append([]models.NewsItem(nil), merged...),
			})
		}
	}

	switch {
	case firstErr != nil:
		return merged, firstErr
	case processed < len(a.pages):
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		a.log.WithError(err).Info("Feed load canceled")
		return merged, err
	case len(failed) > 0:
		return merged, errors.Join(failed...)
	}

	a.log.WithField("total", len(merged)).Info("Feed loaded")
	return merged, nil
}

func (a *Aggregator) fetch(ctx context.Context, page int) ([]models.NewsItem, error) {
	start := time.Now()
	items, err := a.source.FetchPage(ctx, page)
	a.metrics.ObserveFetch(resultLabel(ctx, err), time.Since(start))
	return items, err
}

func (a *Aggregator) logFailure(pe *PageError) {
	a.log.WithFields(logger.Fields{
		"page": pe.Page,
		"kind": string(fetcher.KindOf(pe.Err)),
	}).Errorf("Failed to load feed page: %v", pe.Err)
}

func resultLabel(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case ctx.Err() != nil:
		return metrics.ResultCancel
	case errors.Is(err, fetcher.ErrDecode):
		return metrics.ResultDecode
	default:
		return metrics.ResultNetwork
	}
}
