package feed

import (
	"hws_news/internal/models"
	"sync"
	"time"
)

// Status описывает ход единственной загрузки, стоящей за Store.
type Status struct {
	Done      bool
	Err       error
	Pages     int
	Items     int
	UpdatedAt time.Time
}

// Store хранит последний объединённый снимок для читателей из других горутин.
type Store struct {
	mu      sync.RWMutex
	items   []models.NewsItem
	status  Status
	nowFunc func() time.Time
}

func NewStore() *Store {
	return &Store{nowFunc: time.Now}
}

// Apply заменяет снимок на u.Items. Передаётся как onUpdate в Aggregator.Run.
func (s *Store) Apply(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = u.Items
	s.status.Pages++
	s.status.Items = len(u.Items)
	s.status.UpdatedAt = s.nowFunc()
}

// Finish отмечает завершение загрузки с ошибкой err (nil при успехе).
func (s *Store) Finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Done = true
	s.status.Err = err
	s.status.UpdatedAt = s.nowFunc()
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Items возвращает копию всего снимка.
func (s *Store) Items() []models.NewsItem {
	return s.Latest(0)
}

// Latest возвращает копию не более limit самых свежих новостей. limit <= 0 означает все.
func (s *Store) Latest(limit int) []models.NewsItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.items)
	if limit > 0 && limit < n {
		n = limit
	}
	return append([]models.NewsItem{}, s.items[:n]...)
}

// CountSince возвращает число новостей, опубликованных строго после since.
func (s *Store) CountSince(since time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, item := range s.items {
		if !item.PublishedDate.After(since) {
			// отсортировано от новых к старым
			break
		}
		count++
	}
	return count
}
