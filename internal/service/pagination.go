package service

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageWindow переводит номер страницы в окно выборки. Страница меньше 1
// прижимается к первой; верхней границы нет - страница за концом списка
// возвращает пустую выборку, а не ошибку.
func PageWindow(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}

	return (page - 1) * size, size
}

// NormalizePageParams приводит параметры запроса к допустимым значениям.
func NormalizePageParams(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	return page, limit
}

func TotalPages(total, size int) int {
	if size < 1 {
		return 0
	}

	return (total + size - 1) / size
}
