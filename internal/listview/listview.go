// Package listview implements the client-side list pipeline: a pure
// search→sort→paginate transformation over the in-memory asset set. It has
// no side effects; the same inputs always produce the same view.
package listview

import (
	"sort"
	"strings"

	"asset-management-app/internal/models"
)

// DefaultPageSize matches the reference behavior of 10 rows per page.
const DefaultPageSize = 10

// windowSize is the maximum number of page links shown for navigation.
const windowSize = 5

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sortable columns. An empty SortColumn preserves input order.
const (
	ColumnName        = "name"
	ColumnDescription = "description"
)

// State is the view state driving the pipeline. It is derived UI state and
// never persisted.
type State struct {
	Search        string
	SortColumn    string
	SortDirection Direction
	Page          int
	PageSize      int
}

// NewState returns the initial view state: no search, no sort, first page.
func NewState() State {
	return State{SortDirection: Asc, Page: 1, PageSize: DefaultPageSize}
}

// ToggleSort returns the state after a sort request on column: requesting
// the current column flips the direction, a new column resets to ascending.
func (s State) ToggleSort(column string) State {
	if s.SortColumn == column {
		if s.SortDirection == Asc {
			s.SortDirection = Desc
		} else {
			s.SortDirection = Asc
		}
		return s
	}
	s.SortColumn = column
	s.SortDirection = Asc
	return s
}

// View is one displayed page of records.
type View struct {
	Visible    []models.Asset `json:"items"`
	TotalPages int            `json:"total_pages"`
	PageWindow []int          `json:"page_window"`
}

// Apply runs the full pipeline over assets. The input slice is not modified.
func Apply(assets []models.Asset, s State) View {
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	if s.Page < 1 {
		s.Page = 1
	}

	filtered := Filter(assets, s.Search)
	sorted := Sort(filtered, s.SortColumn, s.SortDirection)

	totalPages := (len(sorted) + s.PageSize - 1) / s.PageSize

	start := (s.Page - 1) * s.PageSize
	end := start + s.PageSize
	if start > len(sorted) {
		start = len(sorted)
	}
	if end > len(sorted) {
		end = len(sorted)
	}

	return View{
		Visible:    sorted[start:end],
		TotalPages: totalPages,
		PageWindow: pageWindow(s.Page, totalPages),
	}
}

// Filter keeps records whose name contains term case-insensitively. An empty
// term passes everything. Input order is preserved.
func Filter(assets []models.Asset, term string) []models.Asset {
	if term == "" {
		return assets
	}
	needle := strings.ToLower(term)
	out := make([]models.Asset, 0, len(assets))
	for _, a := range assets {
		if strings.Contains(strings.ToLower(a.Name), needle) {
			out = append(out, a)
		}
	}
	return out
}

// Sort returns a sorted copy of assets. An empty or unknown column returns
// the input order unchanged. The sort is stable: equal keys keep their
// relative input order.
func Sort(assets []models.Asset, column string, dir Direction) []models.Asset {
	key := sortKey(column)
	if key == nil {
		return assets
	}
	out := make([]models.Asset, len(assets))
	copy(out, assets)
	sort.SliceStable(out, func(i, j int) bool {
		if dir == Desc {
			return key(out[i]) > key(out[j])
		}
		return key(out[i]) < key(out[j])
	})
	return out
}

func sortKey(column string) func(models.Asset) string {
	switch column {
	case ColumnName:
		return func(a models.Asset) string { return a.Name }
	case ColumnDescription:
		return func(a models.Asset) string { return a.Description }
	default:
		return nil
	}
}

// pageWindow returns up to windowSize consecutive page numbers anchored at
// max(1, page-2) and clamped to totalPages.
func pageWindow(page, totalPages int) []int {
	if totalPages == 0 {
		return []int{}
	}
	start := page - 2
	if start < 1 {
		start = 1
	}
	window := []int{}
	for n := start; n <= totalPages && len(window) < windowSize; n++ {
		window = append(window, n)
	}
	return window
}
