package fetcher

import (
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ImageInfo — то, что удалось узнать о миниатюре по её заголовку.
type ImageInfo struct {
	Format string
	Width  int
	Height int
}

// FetchImage загружает изображение и читает только его заголовок.
func (c *Client) FetchImage(ctx context.Context, rawURL string) (ImageInfo, error) {
	body, err := get(ctx, c.http, rawURL)
	if err != nil {
		return ImageInfo{}, err
	}
	defer body.Close()

	cfg, format, err := image.DecodeConfig(body)
	if err != nil {
		return ImageInfo{}, &Error{Op: "image", Kind: KindDecode, URL: rawURL, Err: err}
	}
	return ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
