// Package paginator slices ordered result sets into fixed-size pages.
//
// Page numbers are 1-based. Requests for a page below 1 or past the last page
// resolve to the nearest valid page instead of failing, and an empty result
// set still has one (empty) page.
package paginator

import "strconv"

type Paginator struct {
	count   int
	perPage int
}

// Page describes one page of a paginated result set.
type Page struct {
	Number      int  `json:"number"`
	PerPage     int  `json:"perPage"`
	Count       int  `json:"count"`
	NumPages    int  `json:"numPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
	// StartIndex and EndIndex are the 1-based positions of the first and last
	// item on the page, both 0 when the page is empty.
	StartIndex  int  `json:"startIndex"`
	EndIndex    int  `json:"endIndex"`
}

// New returns a paginator for count items, perPage per page. perPage below
// 1 is treated as 1.
func New(count, perPage int) *Paginator {
	if perPage < 1 {
		perPage = 1
	}
	if count < 0 {
		count = 0
	}
	return &Paginator{count: count, perPage: perPage}
}

func (p *Paginator) Count() int {
	return p.count
}

// NumPages is ceil(count/perPage), and 1 for an empty result set.
func (p *Paginator) NumPages() int {
	if p.count == 0 {
		return 1
	}
	return (p.count + p.perPage - 1) / p.perPage
}

// Page returns page number, clamped into [1, NumPages].
func (p *Paginator) Page(number int) Page {
	numPages := p.NumPages()
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	page := Page{
		Number:      number,
		PerPage:     p.perPage,
		Count:       p.count,
		NumPages:    numPages,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}
	if limit := page.Limit(); limit > 0 {
		page.StartIndex = page.Offset() + 1
		page.EndIndex = page.Offset() + limit
	}
	return page
}

// GetPage resolves the raw "page" query value; anything unparsable is page 1.
func (p *Paginator) GetPage(raw string) Page {
	number, err := strconv.Atoi(raw)
	if err != nil {
		number = 1
	}
	return p.Page(number)
}

// Offset is the index of the first item on the page.
func (pg Page) Offset() int {
	return (pg.Number - 1) * pg.PerPage
}

// Limit is the number of items on the page.
func (pg Page) Limit() int {
	rest := pg.Count - pg.Offset()
	if rest < 0 {
		return 0
	}
	return min(pg.PerPage, rest)
}

// Paginate slices an in-memory sequence the same way the database-backed
// feeds are sliced.
func Paginate[T any](items []T, perPage int, raw string) ([]T, Page) {
	page := New(len(items), perPage).GetPage(raw)
	start := page.Offset()
	return items[start : start+page.Limit()], page
}
