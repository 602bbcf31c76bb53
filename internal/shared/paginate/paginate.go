// Package paginate implements the fixed-size page windowing shared by the
// listing endpoints.
package paginate

import "strconv"

// PerPage is the number of posts on a listing page.
const PerPage = 10

type Meta struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	Count      int `json:"count"`
}

// ParsePage turns a raw query value into a page number. Absent or invalid
// values resolve to the first page.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Window clamps page against the row count and returns the page metadata plus
// the row offset to select. Pages beyond the last resolve to the last page,
// and an empty collection still yields one empty page.
func Window(count, page int) (Meta, int) {
	totalPages := (count + PerPage - 1) / PerPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Meta{Page: page, TotalPages: totalPages, Count: count}, (page - 1) * PerPage
}
