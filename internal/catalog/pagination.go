package catalog

import "github.com/stemsi/unicatalog/internal/model"

// Page is one page slice of an ordered result list.
type Page struct {
	Items     []model.University
	Page      int
	PageCount int
	Total     int
}

// PageCount returns ceil(total/pageSize), never less than 1.
func PageCount(total, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// ClampPage keeps page inside [1, pageCount].
func ClampPage(page, pageCount int) int {
	if pageCount < 1 {
		pageCount = 1
	}
	if page < 1 {
		return 1
	}
	if page > pageCount {
		return pageCount
	}
	return page
}

// Paginate clamps page and returns the half-open slice [(page-1)*pageSize, page*pageSize)
// intersected with the list bounds.
func Paginate(list []model.University, pageSize, page int) Page {
	count := PageCount(len(list), pageSize)
	page = ClampPage(page, count)

	items := []model.University{}
	if pageSize > 0 {
		start := (page - 1) * pageSize
		end := min(start+pageSize, len(list))
		if start < end {
			items = list[start:end]
		}
	}

	return Page{
		Items:     items,
		Page:      page,
		PageCount: count,
		Total:     len(list),
	}
}
