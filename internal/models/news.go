package models

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// NewsItem представляет одну новость из JSON-ленты.
// После декодирования не изменяется, идентичность определяется только ID.
type NewsItem struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Strap         string    `json:"strap"`
	URL           URL       `json:"url"`
	MainImage     URL       `json:"main_image"`
	PublishedDate time.Time `json:"published_date"`
}

// URL — разобранный URI, который декодируется из JSON-строки.
type URL struct {
	url.URL
}

// ParseURL разбирает raw и возвращает URL. Строка без схемы считается ошибкой.
func ParseURL(raw string) (URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return URL{}, fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Scheme == "" {
		return URL{}, fmt.Errorf("invalid url %q: missing scheme", raw)
	}
	return URL{URL: *u}, nil
}

// MustParseURL паникует, если raw не является URI. Используется в тестах и константах.
func MustParseURL(raw string) URL {
	u, err := ParseURL(raw)
	if err != nil {
		panic(err)
	}
	return u
}

func (u URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

func (u *URL) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("url must be a string: %w", err)
	}
	parsed, err := ParseURL(raw)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
