package store

import (
	"context"

	"github.com/MJS022423/GlamURe/models"
)

// LeaderboardStore is a view over the post feed in leaderboard order. It
// holds no state of its own.
type LeaderboardStore struct {
	posts models.PostService
}

func NewLeaderboardStore(posts models.PostService) *LeaderboardStore {
	return &LeaderboardStore{posts: posts}
}

var _ models.LeaderboardService = &LeaderboardStore{}

// Top returns one page of ranked rows: position, poster, style category
// and like count. Ranks continue across pages.
func (s *LeaderboardStore) Top(ctx context.Context, page, pageSize int) ([]models.LeaderboardRow, error) {
	result, err := s.posts.List(ctx, page, pageSize, models.SortLeaderboard)
	if err != nil {
		return nil, err
	}

	rows := make([]models.LeaderboardRow, len(result.Results))
	for i, p := range result.Results {
		rows[i] = models.LeaderboardRow{
			Rank:        (page-1)*pageSize + i + 1,
			DisplayName: p.Username,
			Category:    styleOf(p.Tags),
			LikeCount:   p.Likes,
		}
	}
	return rows, nil
}
