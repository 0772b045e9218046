package store

// Integration tests against a real MongoDB. They run only when
// MONGODB_TEST_URI is set, e.g.
//
//	MONGODB_TEST_URI=mongodb://127.0.0.1:27017 go test ./store/
//
// Each test gets its own throwaway database so runs never interfere.

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/MJS022423/GlamURe/database"
	"github.com/MJS022423/GlamURe/errs"
	"github.com/MJS022423/GlamURe/models"
)

func testDB(t *testing.T) *database.DB {
	t.Helper()

	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set, skipping MongoDB integration test")
	}

	ctx := context.Background()
	d, err := database.Connect(ctx, uri, "glamure_test_"+database.NewID())
	require.NoError(t, err)
	require.NoError(t, d.EnsureIndexes(ctx))

	t.Cleanup(func() {
		_ = d.Users().Drop(ctx)
		_ = d.Likes().Drop(ctx)
		_ = d.Subscriptions().Drop(ctx)
		_ = d.Close(ctx)
	})
	return d
}

func seedUser(t *testing.T, d *database.DB, username string) string {
	t.Helper()
	u, err := NewUserStore(d).Register(context.Background(),
		username, username, fmt.Sprintf("%s_%s@example.com", username, database.NewID()), "hash")
	require.NoError(t, err)
	return u.ID.Hex()
}

// seedPost creates a post and pauses briefly afterwards; createdAt is a
// millisecond-precision BSON datetime and the ordering tests need
// distinct timestamps.
func seedPost(t *testing.T, d *database.DB, ownerID, caption string) string {
	t.Helper()
	p, err := NewPostStore(d).Create(context.Background(),
		ownerID, caption, []string{"Casual"}, []string{"https://cdn.example.com/look.jpg"})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	return p.ID
}

func TestToggleLikeRoundTrip(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()
	likes := NewLikeStore(d)

	owner := seedUser(t, d, "owner")
	viewer := seedUser(t, d, "viewer")
	postID := seedPost(t, d, owner, "first look")

	res, err := likes.Toggle(ctx, postID, viewer)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, int64(1), res.Likes)

	res, err = likes.Toggle(ctx, postID, viewer)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, int64(0), res.Likes)

	n, err := d.Likes().CountDocuments(ctx, bson.M{"postId": postID})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n, "unlike must remove the like record")
}

func TestToggleLikeTwoUsers(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()
	likes := NewLikeStore(d)

	owner := seedUser(t, d, "owner")
	u1 := seedUser(t, d, "u1")
	u2 := seedUser(t, d, "u2")
	postID := seedPost(t, d, owner, "city fit")

	res, err := likes.Toggle(ctx, postID, u1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Likes)

	res, err = likes.Toggle(ctx, postID, u2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Likes)

	res, err = likes.Toggle(ctx, postID, u1)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, int64(1), res.Likes)

	// The counter always agrees with the relation.
	n, err := d.Likes().CountDocuments(ctx, bson.M{"postId": postID})
	require.NoError(t, err)
	assert.Equal(t, res.Likes, n)
}

func TestToggleLikeHealsDriftedCounter(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()
	likes := NewLikeStore(d)

	owner := seedUser(t, d, "owner")
	viewer := seedUser(t, d, "viewer")
	postID := seedPost(t, d, owner, "drifted")

	res, err := likes.Toggle(ctx, postID, viewer)
	require.NoError(t, err)
	require.True(t, res.Liked)

	// Force the cached counter out of agreement with the like records:
	// the record from the toggle above still exists, but the counter
	// reads zero, so the next unlike has nothing left to decrement.
	_, err = d.Users().UpdateOne(ctx,
		bson.M{"posts.postId": postID},
		bson.M{"$set": bson.M{"posts.$.likeCount": 0}},
	)
	require.NoError(t, err)

	res, err = likes.Toggle(ctx, postID, viewer)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.GreaterOrEqual(t, res.Likes, int64(0), "counter never goes negative")

	n, err := d.Likes().CountDocuments(ctx, bson.M{"postId": postID})
	require.NoError(t, err)
	assert.Equal(t, n, res.Likes, "counter is recomputed from the like records")
	assert.Equal(t, int64(0), n)
}

func TestToggleLikeUnknownPost(t *testing.T) {
	d := testDB(t)
	viewer := seedUser(t, d, "viewer")

	_, err := NewLikeStore(d).Toggle(context.Background(), database.NewID(), viewer)
	require.Error(t, err)
	assert.Equal(t, errs.NotFound, errs.KindOf(err))
}

func TestBookmarkDoubleSave(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()
	bookmarks := NewBookmarkStore(d)

	owner := seedUser(t, d, "owner")
	viewer := seedUser(t, d, "viewer")
	postID := seedPost(t, d, owner, "capsule wardrobe")

	item := models.BookmarkItem{PostID: postID, Title: "capsule wardrobe", Snippet: "autumn"}

	saved, err := bookmarks.Save(ctx, viewer, item)
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = bookmarks.Save(ctx, viewer, item)
	require.NoError(t, err)
	assert.False(t, saved, "second save is a no-op")

	views, err := bookmarks.List(ctx, viewer)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Resolved)
	assert.Equal(t, "owner", views[0].Username)
}

func TestBookmarkRemoveMissing(t *testing.T) {
	d := testDB(t)
	viewer := seedUser(t, d, "viewer")

	err := NewBookmarkStore(d).Remove(context.Background(), viewer, database.NewID())
	require.Error(t, err)
	assert.Equal(t, errs.NotFound, errs.KindOf(err))
}

func TestBookmarkDanglingReference(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()
	bookmarks := NewBookmarkStore(d)

	viewer := seedUser(t, d, "viewer")

	// Bookmark a post id that never existed; the saved title and
	// snippet must still come back.
	item := models.BookmarkItem{PostID: database.NewID(), Title: "gone", Snippet: "was here"}
	saved, err := bookmarks.Save(ctx, viewer, item)
	require.NoError(t, err)
	assert.True(t, saved)

	views, err := bookmarks.List(ctx, viewer)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.False(t, views[0].Resolved)
	assert.Equal(t, "gone", views[0].Title)
	assert.Equal(t, "was here", views[0].Snippet)
}

func TestCommentAuthorOnlyRemoval(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()
	comments := NewCommentStore(d)

	owner := seedUser(t, d, "owner")
	author := seedUser(t, d, "author")
	other := seedUser(t, d, "other")
	postID := seedPost(t, d, owner, "street style")

	c, err := comments.Add(ctx, postID, author, "author", "love the palette")
	require.NoError(t, err)

	err = comments.Remove(ctx, postID, c.CommentID, other)
	require.Error(t, err)
	assert.Equal(t, errs.Authorization, errs.KindOf(err))

	list, err := comments.List(ctx, postID)
	require.NoError(t, err)
	assert.Len(t, list, 1, "failed removal must not change the list")

	require.NoError(t, comments.Remove(ctx, postID, c.CommentID, author))

	list, err = comments.List(ctx, postID)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = comments.Remove(ctx, postID, c.CommentID, author)
	require.Error(t, err)
	assert.Equal(t, errs.NotFound, errs.KindOf(err))
}

func TestFeedRecentOrder(t *testing.T) {
	d := testDB(t)
	posts := NewPostStore(d)

	owner := seedUser(t, d, "owner")
	first := seedPost(t, d, owner, "first")
	second := seedPost(t, d, owner, "second")
	third := seedPost(t, d, owner, "third")

	page, err := posts.List(context.Background(), 1, 10, models.SortRecent)
	require.NoError(t, err)
	require.Len(t, page.Results, 3)
	assert.Equal(t, third, page.Results[0].ID)
	assert.Equal(t, second, page.Results[1].ID)
	assert.Equal(t, first, page.Results[2].ID)
}

func TestFeedPaginationCompleteness(t *testing.T) {
	d := testDB(t)
	posts := NewPostStore(d)

	owner := seedUser(t, d, "owner")
	want := map[string]bool{}
	for i := 0; i < 5; i++ {
		want[seedPost(t, d, owner, fmt.Sprintf("look %d", i))] = false
	}

	got := 0
	for p := 1; ; p++ {
		page, err := posts.List(context.Background(), p, 2, models.SortRecent)
		require.NoError(t, err)
		assert.Equal(t, 5, page.TotalDocs)
		assert.Equal(t, 3, page.TotalPages)
		for _, r := range page.Results {
			seen, ok := want[r.ID]
			require.True(t, ok, "page returned an unknown post")
			require.False(t, seen, "post appeared on two pages")
			want[r.ID] = true
			got++
		}
		if p >= page.TotalPages {
			break
		}
	}
	assert.Equal(t, 5, got, "every post appears exactly once across pages")
}

func TestLeaderboardRanks(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()
	posts := NewPostStore(d)
	likes := NewLikeStore(d)

	owner := seedUser(t, d, "owner")
	u1 := seedUser(t, d, "u1")
	u2 := seedUser(t, d, "u2")

	popular := seedPost(t, d, owner, "popular")
	modest := seedPost(t, d, owner, "modest")
	seedPost(t, d, owner, "ignored")

	for _, uid := range []string{u1, u2} {
		_, err := likes.Toggle(ctx, popular, uid)
		require.NoError(t, err)
	}
	_, err := likes.Toggle(ctx, modest, u1)
	require.NoError(t, err)

	rows, err := NewLeaderboardStore(posts).Top(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2, "unliked posts stay off the leaderboard")

	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, int64(2), rows[0].LikeCount)
	assert.Equal(t, "Casual", rows[0].Category)
	assert.Equal(t, 2, rows[1].Rank)
	assert.Equal(t, int64(1), rows[1].LikeCount)
}
