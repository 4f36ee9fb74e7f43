package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"hws_news/internal/models"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// PagePlaceholder заменяется номером страницы в шаблоне URL ленты.
const PagePlaceholder = "{page}"

// DefaultPattern — шаблон адреса страниц ленты HWS.
const DefaultPattern = "https://hws.dev/news-" + PagePlaceholder + ".json"

// Client загружает страницы ленты и миниатюры.
type Client struct {
	http    *http.Client
	pattern string
}

// NewClient создаёт клиента с таймаутом timeout (0 — без таймаута) и шаблоном pattern.
func NewClient(timeout time.Duration, pattern string) *Client {
	return NewClientWithHTTP(&http.Client{Timeout: timeout}, pattern)
}

// NewClientWithHTTP позволяет подставить свой *http.Client, например из httptest.
func NewClientWithHTTP(hc *http.Client, pattern string) *Client {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &Client{http: hc, pattern: pattern}
}

// PageURL возвращает адрес страницы page.
func (c *Client) PageURL(page int) string {
	return strings.ReplaceAll(c.pattern, PagePlaceholder, strconv.Itoa(page))
}

// FetchPage загружает страницу ленты и декодирует массив новостей.
func (c *Client) FetchPage(ctx context.Context, page int) ([]models.NewsItem, error) {
	items, err := Decode[[]models.NewsItem](ctx, c.http, c.PageURL(page))
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FetchItem загружает одну новость по адресу rawURL.
func (c *Client) FetchItem(ctx context.Context, rawURL string) (models.NewsItem, error) {
	return Decode[models.NewsItem](ctx, c.http, rawURL)
}

// Decode выполняет GET по rawURL и декодирует JSON-тело в T.
// Даты разбираются в формате ISO-8601 (RFC 3339).
func Decode[T any](ctx context.Context, client *http.Client, rawURL string) (T, error) {
	var zero T

	body, err := get(ctx, client, rawURL)
	if err != nil {
		return zero, err
	}
	defer body.Close()

	var v T
	if err := json.NewDecoder(body).Decode(&v); err != nil {
		return zero, &Error{Op: "decode", Kind: KindDecode, URL: rawURL, Err: err}
	}
	return v, nil
}

func get(ctx context.Context, client *http.Client, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{Op: "get", Kind: KindNetwork, URL: rawURL, Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{Op: "get", Kind: KindNetwork, URL: rawURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &Error{
			Op:     "get",
			Kind:   KindNetwork,
			URL:    rawURL,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected status %s", resp.Status),
		}
	}
	return resp.Body, nil
}
