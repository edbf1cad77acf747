package catalog

import "github.com/DRSN-tech/storefront/internal/domain"

// QueryState — параметры просмотра каталога.
// Смена поискового запроса или категории сбрасывает страницу на первую.
type QueryState struct {
	SearchTerm string
	Category   domain.Category
	Page       int
	PageSize   int
}

func NewQueryState(pageSize int) QueryState {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return QueryState{
		Category: domain.CategoryAll,
		Page:     1,
		PageSize: pageSize,
	}
}

func (q *QueryState) SetSearchTerm(term string) {
	q.SearchTerm = term
	q.Page = 1
}

func (q *QueryState) SetCategory(category domain.Category) {
	q.Category = category
	q.Page = 1
}

func (q *QueryState) SetPage(page int) {
	q.Page = page
}
