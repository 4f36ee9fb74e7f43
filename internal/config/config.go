package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"hws_news/internal/fetcher"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Переменные окружения, переопределяющие значения из файла.
const (
	EnvConfigPath = "HWS_NEWS_CONFIG"
	EnvLocale     = "HWS_NEWS_LOCALE"
	EnvListen     = "HWS_NEWS_LISTEN"
	EnvTimeout    = "HWS_NEWS_TIMEOUT_SECONDS"
)

// Config хранит шаблон адреса ленты, число страниц и параметры отображения.
type Config struct {
	FeedPattern     string `json:"feed_pattern"`
	Pages           int    `json:"pages"`
	TimeoutSeconds  int    `json:"timeout_seconds"`
	Locale          string `json:"locale"`
	Title           string `json:"title"`
	ContinueOnError bool   `json:"continue_on_error"`
	ListenAddr      string `json:"listen_addr"`
}

// Default возвращает конфигурацию для пяти страниц https://hws.dev/news-{page}.json.
func Default() *Config {
	return &Config{
		FeedPattern:    fetcher.DefaultPattern,
		Pages:          5,
		TimeoutSeconds: 30,
		Locale:         "en",
		Title:          "HWS News",
		ListenAddr:     ":8080",
	}
}

// Timeout возвращает таймаут HTTP-клиента.
func (cfg *Config) Timeout() time.Duration {
	return time.Duration(cfg.TimeoutSeconds) * time.Second
}

// PageNumbers возвращает номера страниц 1..Pages.
func (cfg *Config) PageNumbers() []int {
	pages := make([]int, 0, cfg.Pages)
	for i := 1; i <= cfg.Pages; i++ {
		pages = append(pages, i)
	}
	return pages
}

// Validate проверяет шаблон ленты, число страниц, таймаут и локаль.
func (cfg *Config) Validate() error {
	if !strings.Contains(cfg.FeedPattern, fetcher.PagePlaceholder) {
		return fmt.Errorf("feed pattern must contain %s", fetcher.PagePlaceholder)
	}
	sample := strings.ReplaceAll(cfg.FeedPattern, fetcher.PagePlaceholder, "1")
	if _, err := url.ParseRequestURI(sample); err != nil {
		return fmt.Errorf("invalid feed pattern: %s", cfg.FeedPattern)
	}
	if cfg.Pages < 1 {
		return errors.New("pages must be ≥ 1")
	}
	if cfg.TimeoutSeconds < 0 {
		return errors.New("timeout must not be negative")
	}
	if _, err := language.Parse(cfg.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
	}
	return nil
}

// LoadConfig читает JSON-файл по пути path поверх значений по умолчанию.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := Default()
	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load читает файл path, если он задан (или указан в HWS_NEWS_CONFIG),
// применяет переменные окружения и проверяет результат.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	cfg := Default()
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = loaded
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) applyEnv() error {
	if v := os.Getenv(EnvLocale); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv(EnvListen); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		cfg.TimeoutSeconds = n
	}
	return nil
}
