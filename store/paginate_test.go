package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MJS022423/GlamURe/errs"
	"github.com/MJS022423/GlamURe/models"
)

func feedAt(id string, likes int64, createdAt time.Time) models.FeedPost {
	return models.FeedPost{ID: id, Likes: likes, CreatedAt: createdAt}
}

func TestSortFeedRecent(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	feed := []models.FeedPost{
		feedAt("t1", 0, base.Add(1*time.Minute)),
		feedAt("t3", 0, base.Add(3*time.Minute)),
		feedAt("t2", 0, base.Add(2*time.Minute)),
	}

	sorted := sortFeed(feed, models.SortRecent)

	ids := []string{sorted[0].ID, sorted[1].ID, sorted[2].ID}
	assert.Equal(t, []string{"t3", "t2", "t1"}, ids)
}

func TestSortFeedLeaderboard(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	feed := []models.FeedPost{
		feedAt("old-popular", 5, base),
		feedAt("unliked", 0, base.Add(4*time.Minute)),
		feedAt("new-popular", 5, base.Add(2*time.Minute)),
		feedAt("mild", 1, base.Add(1*time.Minute)),
	}

	sorted := sortFeed(feed, models.SortLeaderboard)

	require.Len(t, sorted, 3, "posts without likes are excluded")
	// Ties on like count break toward the newer post.
	assert.Equal(t, "new-popular", sorted[0].ID)
	assert.Equal(t, "old-popular", sorted[1].ID)
	assert.Equal(t, "mild", sorted[2].ID)
}

func TestPageOfValidation(t *testing.T) {
	_, err := pageOf(nil, 0, 10)
	assert.True(t, errs.Is(err, errs.Validation))

	_, err = pageOf(nil, 1, 0)
	assert.True(t, errs.Is(err, errs.Validation))
}

func TestPageOfOutOfRange(t *testing.T) {
	feed := []models.FeedPost{feedAt("a", 0, time.Now())}

	page, err := pageOf(feed, 5, 10)
	require.NoError(t, err)

	assert.Empty(t, page.Results)
	assert.Equal(t, 1, page.TotalDocs)
	assert.Equal(t, 1, page.TotalPages)
}

func TestPageOfCompleteness(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var feed []models.FeedPost
	for i := 0; i < 7; i++ {
		feed = append(feed, feedAt(string(rune('a'+i)), 0, base.Add(time.Duration(i)*time.Minute)))
	}
	feed = sortFeed(feed, models.SortRecent)

	const pageSize = 3
	first, err := pageOf(feed, 1, pageSize)
	require.NoError(t, err)
	assert.Equal(t, 7, first.TotalDocs)
	assert.Equal(t, 3, first.TotalPages)

	seen := make(map[string]bool)
	var concatenated []string
	for p := 1; p <= first.TotalPages; p++ {
		page, err := pageOf(feed, p, pageSize)
		require.NoError(t, err)
		for _, post := range page.Results {
			assert.False(t, seen[post.ID], "post %s appeared twice", post.ID)
			seen[post.ID] = true
			concatenated = append(concatenated, post.ID)
		}
	}

	// All pages together are exactly the sorted feed: no gaps, no
	// duplicates, declared order preserved.
	require.Len(t, concatenated, len(feed))
	for i, post := range feed {
		assert.Equal(t, post.ID, concatenated[i])
	}
}

func TestPageOfRecentScenario(t *testing.T) {
	// Posts created at t=1,2,3; first page of size 2 must be t3, t2.
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	feed := sortFeed([]models.FeedPost{
		feedAt("t1", 0, base.Add(1*time.Second)),
		feedAt("t2", 0, base.Add(2*time.Second)),
		feedAt("t3", 0, base.Add(3*time.Second)),
	}, models.SortRecent)

	page, err := pageOf(feed, 1, 2)
	require.NoError(t, err)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "t3", page.Results[0].ID)
	assert.Equal(t, "t2", page.Results[1].ID)
}
