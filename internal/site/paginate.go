package site

import (
	"sort"
	"strconv"
)

// Page is one listing page of the paginated post sequence. Numbering is
// 1-based; Total is the page count across the whole sequence.
type Page struct {
	Number int
	Total  int
	Posts  []Post
}

// SortPosts orders posts newest first. Normalized YYYY-MM-DD dates compare
// lexicographically in exact chronological order. Posts sharing a date keep
// their discovery order; the sort is stable.
func SortPosts(posts []Post) []Post {
	sorted := make([]Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	return sorted
}

// Paginate slices sorted posts into pages of pageSize. Zero posts produce
// zero pages: with nothing to list there is no index page to publish.
func Paginate(posts []Post, pageSize int) []Page {
	if pageSize < 1 || len(posts) == 0 {
		return nil
	}

	total := (len(posts) + pageSize - 1) / pageSize
	pages := make([]Page, 0, total)
	for n := 1; n <= total; n++ {
		start := (n - 1) * pageSize
		end := start + pageSize
		if end > len(posts) {
			end = len(posts)
		}
		pages = append(pages, Page{Number: n, Total: total, Posts: posts[start:end]})
	}
	return pages
}

// ListingFilename names a listing page's output file: the first page is the
// site root index, later pages are numbered.
func ListingFilename(pageNumber int) string {
	if pageNumber == 1 {
		return "index.html"
	}
	return "page" + strconv.Itoa(pageNumber) + ".html"
}
