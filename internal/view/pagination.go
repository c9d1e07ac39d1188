package view

import "github.com/minhaalawais/fos-hrdd-software/internal/model"

const DefaultPageSize = 10

var allowedPageSizes = []int{10, 25, 50, 100}

// NormalizePageSize coerces any value outside the allowed set to the default.
func NormalizePageSize(size int) int {
	for _, allowed := range allowedPageSizes {
		if size == allowed {
			return size
		}
	}
	return DefaultPageSize
}

// Page is one window of the filtered list plus the numbers the table footer
// needs.
type Page struct {
	Items      []model.Complaint `json:"items"`
	TotalItems int               `json:"total_items"`
	PageCount  int               `json:"page_count"`
	PageIndex  int               `json:"page_index"`
	PageSize   int               `json:"page_size"`
}

// Paginate slices an already-filtered list. An out-of-range page index clamps
// to the last page; a negative one clamps to the first.
func Paginate(list []model.Complaint, page, size int) Page {
	size = NormalizePageSize(size)

	count := (len(list) + size - 1) / size
	if page >= count && count > 0 {
		page = count - 1
	}
	if page < 0 {
		page = 0
	}

	start := page * size
	end := start + size
	if start > len(list) {
		start = len(list)
	}
	if end > len(list) {
		end = len(list)
	}

	return Page{
		Items:      list[start:end],
		TotalItems: len(list),
		PageCount:  count,
		PageIndex:  page,
		PageSize:   size,
	}
}
