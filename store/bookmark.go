package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MJS022423/GlamURe/database"
	"github.com/MJS022423/GlamURe/errs"
	"github.com/MJS022423/GlamURe/models"
)

// BookmarkStore manages the bookmark list embedded in each user. The
// at-most-one-entry-per-post invariant is enforced by the save filter,
// not by a separate existence check.
type BookmarkStore struct {
	db *database.DB
}

func NewBookmarkStore(db *database.DB) *BookmarkStore {
	return &BookmarkStore{db: db}
}

var _ models.BookmarkService = &BookmarkStore{}

// Save appends a bookmark entry unless one for the same post already
// exists. The $ne guard on the filter makes the append conditional in a
// single write, so two concurrent saves cannot both match. An existing
// entry reports saved=false with no error.
func (s *BookmarkStore) Save(ctx context.Context, userID string, item models.BookmarkItem) (bool, error) {
	if item.PostID == "" {
		return false, errs.New(errs.Validation, "invalid post data")
	}
	uid, err := database.ObjectID(userID)
	if err != nil {
		return false, err
	}

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	entry := models.BookmarkEntry{
		PostID:  item.PostID,
		Title:   item.Title,
		Snippet: item.Snippet,
		SavedAt: time.Now().UTC(),
	}

	res, err := s.db.Users().UpdateOne(ctx,
		bson.M{"_id": uid, "bookmarks.postId": bson.M{"$ne": item.PostID}},
		bson.M{"$push": bson.M{"bookmarks": entry}},
	)
	if err != nil {
		return false, errs.Wrap(errs.Persistence, "failed to save bookmark", err)
	}
	if res.MatchedCount == 0 {
		n, err := s.db.Users().CountDocuments(ctx, bson.M{"_id": uid})
		if err != nil {
			return false, errs.Wrap(errs.Persistence, "failed to resolve user", err)
		}
		if n == 0 {
			return false, errs.New(errs.NotFound, "user not found")
		}
		// Already saved.
		return false, nil
	}
	return true, nil
}

// Remove deletes the matching entry or reports that none exists.
func (s *BookmarkStore) Remove(ctx context.Context, userID, postID string) error {
	if postID == "" {
		return errs.New(errs.Validation, "post ID is required")
	}
	uid, err := database.ObjectID(userID)
	if err != nil {
		return err
	}

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	res, err := s.db.Users().UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$pull": bson.M{"bookmarks": bson.M{"postId": postID}}},
	)
	if err != nil {
		return errs.Wrap(errs.Persistence, "failed to remove bookmark", err)
	}
	if res.MatchedCount == 0 {
		return errs.New(errs.NotFound, "user not found")
	}
	if res.ModifiedCount == 0 {
		return errs.New(errs.NotFound, "bookmark not found")
	}
	return nil
}

// List returns the user's bookmarks augmented with the live post where
// the weak reference still resolves. When it does not, the saved title
// and snippet are the fallback.
func (s *BookmarkStore) List(ctx context.Context, userID string) ([]models.BookmarkView, error) {
	uid, err := database.ObjectID(userID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var user models.User
	err = s.db.Users().FindOne(ctx, bson.M{"_id": uid}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, errs.New(errs.NotFound, "user not found")
	}
	if err != nil {
		return nil, errs.Wrap(errs.Persistence, "failed to fetch user", err)
	}

	views := make([]models.BookmarkView, 0, len(user.Bookmarks))
	if len(user.Bookmarks) == 0 {
		return views, nil
	}

	ids := make([]string, len(user.Bookmarks))
	for i, b := range user.Bookmarks {
		ids[i] = b.PostID
	}

	cursor, err := s.db.Users().Find(ctx,
		bson.M{"posts.postId": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"username": 1, "profilePicture": 1, "posts": 1}),
	)
	if err != nil {
		return nil, errs.Wrap(errs.Persistence, "failed to fetch bookmarked posts", err)
	}
	defer cursor.Close(ctx)

	var owners []models.User
	if err := cursor.All(ctx, &owners); err != nil {
		return nil, errs.Wrap(errs.Persistence, "failed to decode bookmarked posts", err)
	}

	type resolved struct {
		post  models.FeedPost
		found bool
	}
	live := make(map[string]resolved, len(ids))
	for _, b := range user.Bookmarks {
		live[b.PostID] = resolved{}
	}
	for _, owner := range owners {
		for _, p := range owner.Posts {
			if r, wanted := live[p.PostID]; wanted && !r.found {
				live[p.PostID] = resolved{post: formatPost(owner.Username, owner.ProfilePicture, p), found: true}
			}
		}
	}

	for _, b := range user.Bookmarks {
		view := models.BookmarkView{
			PostID:  b.PostID,
			Title:   b.Title,
			Snippet: b.Snippet,
			SavedAt: b.SavedAt,
		}
		if r := live[b.PostID]; r.found {
			view.Resolved = true
			view.Username = r.post.Username
			view.Caption = r.post.Caption
			view.Tags = r.post.Tags
			view.Images = r.post.Images
			view.Likes = r.post.Likes
			view.Comments = r.post.Comments
		}
		views = append(views, view)
	}
	return views, nil
}
