package views

import (
	"fmt"

	"expense-dashboard/internal/models"
)

// PageSize is the number of rows on one page of the expense list.
const PageSize = 10

// PageInfo describes the position of a page within a listing. Page is
// zero-based.
type PageInfo struct {
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

// PageInfoOf extracts the paging fields of p.
func PageInfoOf[T any](p models.Page[T]) PageInfo {
	return PageInfo{Page: p.Page, Size: p.Size, TotalElements: p.TotalElements, TotalPages: p.TotalPages}
}

// Range returns the one-based positions of the first and last row of the
// page.
func (p PageInfo) Range() (from, to int64) {
	if p.TotalElements == 0 {
		return 0, 0
	}
	from = int64(p.Page)*int64(p.Size) + 1
	to = min(int64(p.Page+1)*int64(p.Size), p.TotalElements)
	return from, to
}

// Label is the "Showing X-Y of Z" caption.
func (p PageInfo) Label() string {
	from, to := p.Range()
	return fmt.Sprintf("Showing %d-%d of %d", from, to, p.TotalElements)
}

// Buttons returns one zero-based page index per page.
func (p PageInfo) Buttons() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i
	}
	return out
}

func (p PageInfo) HasPrev() bool { return p.Page > 0 }
func (p PageInfo) HasNext() bool { return p.Page < p.TotalPages-1 }

// Visible reports whether the pager is shown at all.
func (p PageInfo) Visible() bool { return p.TotalPages > 1 }
