package store

import (
	"sort"

	"github.com/MJS022423/GlamURe/errs"
	"github.com/MJS022423/GlamURe/models"
)

// sortFeed orders the flattened feed in place according to mode. In
// leaderboard mode posts without likes are dropped first.
func sortFeed(posts []models.FeedPost, mode models.SortMode) []models.FeedPost {
	if mode == models.SortLeaderboard {
		ranked := posts[:0]
		for _, p := range posts {
			if p.Likes > 0 {
				ranked = append(ranked, p)
			}
		}
		posts = ranked
		sort.SliceStable(posts, func(i, j int) bool {
			if posts[i].Likes != posts[j].Likes {
				return posts[i].Likes > posts[j].Likes
			}
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
		return posts
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts
}

// pageOf slices one page out of the sorted feed. An out-of-range page is
// an empty result, not an error.
func pageOf(posts []models.FeedPost, page, pageSize int) (*models.PostPage, error) {
	if page < 1 || pageSize < 1 {
		return nil, errs.New(errs.Validation, "page and pageSize must be positive")
	}

	total := len(posts)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	results := make([]models.FeedPost, end-start)
	copy(results, posts[start:end])

	return &models.PostPage{
		Results:    results,
		Page:       page,
		TotalPages: totalPages,
		TotalDocs:  total,
	}, nil
}
