package feed

import (
	"hws_news/internal/models"
	"sort"
)

// Merge добавляет page к acc и пересортировывает всю коллекцию от новых к старым.
// acc не изменяется.
//
// Полная сортировка на каждую страницу стоит O(n log n).
// TODO: перейти на слияние отсортированных срезов, если страниц станет много.
func Merge(acc, page []models.NewsItem) []models.NewsItem {
	merged := make([]models.NewsItem, 0, len(acc)+len(page))
	merged = append(merged, acc...)
	merged = append(merged, page...)
	SortByPublished(merged)
	return merged
}

// SortByPublished сортирует по PublishedDate по убыванию. При равных датах
// порядок определяется ID по убыванию.
func SortByPublished(items []models.NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.PublishedDate.Equal(b.PublishedDate) {
			return a.PublishedDate.After(b.PublishedDate)
		}
		return a.ID > b.ID
	})
}

// IsSorted сообщает, не возрастает ли PublishedDate по items.
func IsSorted(items []models.NewsItem) bool {
	for i := 1; i < len(items); i++ {
		if items[i].PublishedDate.After(items[i-1].PublishedDate) {
			return false
		}
	}
	return true
}
