package filtersort

import (
	"github.com/fluentkit/sift/pkg/proxy"
)

// Header bundles a FilterBar and a SortMenu the way a list view's header
// row composes them. It owns no view state of its own; it exists to wire
// both controls to a single proxy or listener in one place.
type Header struct {
	Filter *FilterBar
	Sort   *SortMenu
}

// NewHeader creates a header with a filter bar over categories and a sort
// menu over fields. defaultField and ascending seed the sort menu.
func NewHeader(categories []string, fields []SortField, defaultField string, ascending bool) *Header {
	return &Header{
		Filter: NewFilterBar(categories),
		Sort:   NewSortMenu(fields, defaultField, ascending),
	}
}

// CurrentFilter returns the filter bar's active state.
func (h *Header) CurrentFilter() FilterState {
	return h.Filter.CurrentFilter()
}

// CurrentSort returns the sort menu's active state.
func (h *Header) CurrentSort() SortState {
	return h.Sort.CurrentSort()
}

// Bind connects the header to a proxy: settled filter text becomes the
// proxy pattern, and sort changes become proxy sorts via fieldColumns,
// which maps declared field names to model columns. Unmapped fields clear
// the sort. The proxy is seeded with the current sort state.
func (h *Header) Bind(p *proxy.Proxy, fieldColumns map[string]int) {
	h.Filter.OnFilterChanged = func(text, _ string) {
		p.SetPattern(text)
	}
	apply := func(field string, ascending bool) {
		col, ok := fieldColumns[field]
		if !ok {
			col = -1
		}
		p.SetSort(col, ascending)
	}
	h.Sort.OnSortChanged = apply

	current := h.Sort.CurrentSort()
	apply(current.Field, current.Ascending)
}
