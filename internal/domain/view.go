package domain

import (
	"errors"
	"slices"
	"strings"
)

// ItemsPerPage is the fixed page size of the catalog view.
const ItemsPerPage = 8

// maxVisiblePages is the number of page links shown before ellipses kick in.
const maxVisiblePages = 5

var ErrInvalidViewMode = errors.New("view mode must be one of: grid, list")

// ViewMode is a display hint for clients; it never changes which products are returned.
type ViewMode string

const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

// ParseViewMode converts a raw string into a ViewMode
func ParseViewMode(s string) (ViewMode, error) {
	switch mode := ViewMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ViewModeGrid, ViewModeList:
		return mode, nil
	default:
		return "", ErrInvalidViewMode
	}
}

// ViewState is the user-adjustable part of the catalog view.
type ViewState struct {
	SearchQuery  string
	CurrentPage  int
	ViewMode     ViewMode
	ItemsPerPage int
}

// CatalogView is every derived value of the catalog computed from a single
// ViewState and product collection, so the parts are always consistent with
// each other.
type CatalogView struct {
	ViewState
	Filtered      []Product
	FilteredCount int
	TotalPages    int
	Items         []Product
	Summary       PageSummary
	Pages         []PageLink
}

// BuildCatalogView runs filter, sort and paginate over products for state.
func BuildCatalogView(products []Product, state ViewState) CatalogView {
	filtered := ComputeFiltered(products, state.SearchQuery)
	totalPages := ComputeTotalPages(len(filtered), state.ItemsPerPage)
	return CatalogView{
		ViewState:     state,
		Filtered:      filtered,
		FilteredCount: len(filtered),
		TotalPages:    totalPages,
		Items:         ComputePaginated(filtered, state.CurrentPage, state.ItemsPerPage),
		Summary:       SummarizePage(state.CurrentPage, state.ItemsPerPage, len(filtered)),
		Pages:         VisiblePages(state.CurrentPage, totalPages),
	}
}

// MatchesQuery reports whether the product name contains query, ignoring case.
// A query that is blank after trimming matches everything.
func MatchesQuery(p Product, query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(query))
}

// ComputeFiltered returns a new slice holding the products matching query,
// newest first. The input slice is not modified.
func ComputeFiltered(products []Product, query string) []Product {
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if MatchesQuery(p, query) {
			filtered = append(filtered, p)
		}
	}
	SortNewestFirst(filtered)
	return filtered
}

// SortNewestFirst orders products by CreatedAt descending. Equal timestamps
// keep their relative order.
func SortNewestFirst(products []Product) {
	slices.SortStableFunc(products, func(a, b Product) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

// ComputeTotalPages returns ceil(count / perPage); zero when count is zero.
func ComputeTotalPages(count, perPage int) int {
	if count <= 0 || perPage <= 0 {
		return 0
	}
	return (count + perPage - 1) / perPage
}

// ComputePaginated returns the window of filtered for the 1-indexed page.
// Pages outside the valid range yield an empty slice.
func ComputePaginated(filtered []Product, page, perPage int) []Product {
	if page < 1 || perPage <= 0 {
		return []Product{}
	}
	start := (page - 1) * perPage
	if start >= len(filtered) {
		return []Product{}
	}
	end := min(start+perPage, len(filtered))
	out := make([]Product, end-start)
	copy(out, filtered[start:end])
	return out
}

// PageSummary describes which items of the filtered set a page shows,
// as 1-indexed positions. It is the zero value for an empty page.
type PageSummary struct {
	Start int
	End   int
	Total int
}

// SummarizePage computes the "showing start to end of total" figures.
func SummarizePage(page, perPage, total int) PageSummary {
	if page < 1 || perPage <= 0 {
		return PageSummary{Total: total}
	}
	start := (page-1)*perPage + 1
	if start > total {
		return PageSummary{Total: total}
	}
	return PageSummary{
		Start: start,
		End:   min(page*perPage, total),
		Total: total,
	}
}

// PageLink is one entry of a pagination control: a page number or an ellipsis.
type PageLink struct {
	Page     int
	Ellipsis bool
	Current  bool
}

// VisiblePages lists the page links a pagination control shows: every page
// when there are few, otherwise the first, the last and the neighbours of the
// current page with ellipses over the gaps.
func VisiblePages(current, total int) []PageLink {
	if total <= 0 {
		return []PageLink{}
	}

	pages := make([]PageLink, 0, maxVisiblePages+2)
	add := func(n int) {
		pages = append(pages, PageLink{Page: n, Current: n == current})
	}

	if total <= maxVisiblePages {
		for n := 1; n <= total; n++ {
			add(n)
		}
		return pages
	}

	add(1)
	if current > 3 {
		pages = append(pages, PageLink{Ellipsis: true})
	}
	for n := max(2, current-1); n <= min(total-1, current+1); n++ {
		add(n)
	}
	if current < total-2 {
		pages = append(pages, PageLink{Ellipsis: true})
	}
	add(total)

	return pages
}
