// Package catalog фильтрует и постранично режет список товаров.
// Все функции чистые: результат полностью определяется входными данными.
package catalog

import (
	"strings"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// DefaultPageSize — размер страницы каталога по умолчанию.
const DefaultPageSize = 12

// Result — видимая страница и метаданные выборки.
type Result struct {
	Filtered     []domain.Product
	Items        []domain.Product
	Page         int
	PageSize     int
	TotalPages   int
	TotalResults int
}

// DisplayPages возвращает число страниц для отображения: пустая выборка — одна пустая страница.
func (r Result) DisplayPages() int {
	if r.TotalPages == 0 {
		return 1
	}

	return r.TotalPages
}

// HasNext сообщает, есть ли страница после текущей.
func (r Result) HasNext() bool {
	return r.Page < r.TotalPages
}

// HasPrev сообщает, есть ли страница перед текущей.
func (r Result) HasPrev() bool {
	return r.Page > 1 && r.TotalPages > 0
}

// Run применяет фильтр и пагинацию. Порядок входного списка сохраняется.
// Номер страницы вне [1, TotalPages] не корректируется: Items будет пустым.
func Run(products []domain.Product, q QueryState) Result {
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	filtered := Filter(products, q.SearchTerm, q.Category)
	total := len(filtered)

	return Result{
		Filtered:     filtered,
		Items:        paginate(filtered, q.Page, pageSize),
		Page:         q.Page,
		PageSize:     pageSize,
		TotalPages:   (total + pageSize - 1) / pageSize,
		TotalResults: total,
	}
}

// Filter оставляет товары, проходящие и фильтр категории, и текстовый поиск.
func Filter(products []domain.Product, searchTerm string, category domain.Category) []domain.Product {
	term := strings.ToLower(searchTerm)

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matchesCategory(p, category) && matchesSearch(p, term) {
			out = append(out, p)
		}
	}

	return out
}

func matchesCategory(p domain.Product, category domain.Category) bool {
	return category.IsAll() || p.Category == category
}

// term уже в нижнем регистре.
func matchesSearch(p domain.Product, term string) bool {
	if term == "" {
		return true
	}

	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(string(p.Category)), term)
}

func paginate(products []domain.Product, page, pageSize int) []domain.Product {
	if page < 1 {
		return []domain.Product{}
	}

	start := (page - 1) * pageSize
	if start >= len(products) {
		return []domain.Product{}
	}

	end := min(start+pageSize, len(products))
	out := make([]domain.Product, end-start)
	copy(out, products[start:end])
	return out
}

// FeaturedFirst возвращает новый список: сначала рекомендуемые товары, затем остальные,
// с сохранением исходного порядка внутри каждой группы. Применяется до Run.
func FeaturedFirst(products []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Featured {
			out = append(out, p)
		}
	}
	for _, p := range products {
		if !p.Featured {
			out = append(out, p)
		}
	}

	return out
}

// Featured возвращает только рекомендуемые товары.
func Featured(products []domain.Product) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range products {
		if p.Featured {
			out = append(out, p)
		}
	}

	return out
}
