package site

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func makePosts(n int) []Post {
	posts := make([]Post, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, Post{
			Slug:  fmt.Sprintf("post-%02d", i),
			Title: fmt.Sprintf("Post %d", i),
			Date:  fmt.Sprintf("2024-01-%02d", i+1),
		})
	}
	return posts
}

func TestSortPosts_NewestFirst(t *testing.T) {
	posts := []Post{
		{Slug: "a", Date: "2023-05-01"},
		{Slug: "b", Date: "2024-01-15"},
		{Slug: "c", Date: "2022-12-31"},
	}

	sorted := SortPosts(posts)
	require.Equal(t, []string{"b", "a", "c"}, []string{sorted[0].Slug, sorted[1].Slug, sorted[2].Slug})
}

func TestSortPosts_EqualDates_PreserveDiscoveryOrder(t *testing.T) {
	posts := []Post{
		{Slug: "first", Date: "2024-01-01"},
		{Slug: "second", Date: "2024-01-01"},
		{Slug: "third", Date: "2024-01-01"},
	}

	sorted := SortPosts(posts)
	require.Equal(t, "first", sorted[0].Slug)
	require.Equal(t, "second", sorted[1].Slug)
	require.Equal(t, "third", sorted[2].Slug)
}

func TestPaginate_TwelvePostsPageSizeFive_ThreePages(t *testing.T) {
	pages := Paginate(makePosts(12), 5)

	require.Len(t, pages, 3)
	require.Len(t, pages[0].Posts, 5)
	require.Len(t, pages[1].Posts, 5)
	require.Len(t, pages[2].Posts, 2)
	for i, page := range pages {
		require.Equal(t, i+1, page.Number)
		require.Equal(t, 3, page.Total)
	}
}

func TestPaginate_ZeroPosts_ZeroPages(t *testing.T) {
	require.Empty(t, Paginate(nil, 5))
	require.Empty(t, Paginate([]Post{}, 5))
}

func TestPaginate_ExactMultiple_NoEmptyTrailingPage(t *testing.T) {
	pages := Paginate(makePosts(10), 5)
	require.Len(t, pages, 2)
	require.Len(t, pages[1].Posts, 5)
}

func TestListingFilename_FirstPageIsIndex(t *testing.T) {
	require.Equal(t, "index.html", ListingFilename(1))
	require.Equal(t, "page2.html", ListingFilename(2))
	require.Equal(t, "page10.html", ListingFilename(10))
}
