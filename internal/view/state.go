package view

// Reducers over the shared filter state. Every change of a filter argument or
// the page size resets the page index to zero, so the table never points past
// the new result set.

// WithSearch replaces the search term.
func (f Filter) WithSearch(term string) Filter {
	f.Search = term
	f.Page = 0
	return f
}

// WithPageSize replaces the page size, normalizing values outside the allowed
// set.
func (f Filter) WithPageSize(size int) Filter {
	f.PageSize = NormalizePageSize(size)
	f.Page = 0
	return f
}

// ToggleStatus applies a doughnut-slice click. Clicking the already-selected
// slice clears the status filter; a click outside any slice arrives as an
// empty status and clears it as well.
func (f Filter) ToggleStatus(status string) Filter {
	if status == "" || f.Status == status {
		f.Status = ""
	} else {
		f.Status = status
	}
	f.Page = 0
	return f
}

// ToggleSegment applies a bar-segment click, which drives both the category
// and status filters at once. Clicking the same segment again, or outside any
// bar, clears both.
func (f Filter) ToggleSegment(category, status string) Filter {
	if (category == "" && status == "") || (f.Category == category && f.Status == status) {
		f.Category = ""
		f.Status = ""
	} else {
		f.Category = category
		f.Status = status
	}
	f.Page = 0
	return f
}

// ClearStatus and ClearCategory back the dismiss buttons on the active-filter
// badges.
func (f Filter) ClearStatus() Filter {
	f.Status = ""
	f.Page = 0
	return f
}

func (f Filter) ClearCategory() Filter {
	f.Category = ""
	f.Page = 0
	return f
}
