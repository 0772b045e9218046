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

// PostStore creates posts inside their owner's document and serves the
// feed flattened across all users.
type PostStore struct {
	db *database.DB
}

func NewPostStore(db *database.DB) *PostStore {
	return &PostStore{db: db}
}

var _ models.PostService = &PostStore{}

// Create validates the input, resolves the owner, and appends the new
// post to the owner's embedded list. The returned read model has the
// owner's username and avatar joined in.
func (s *PostStore) Create(ctx context.Context, ownerID, caption string, tags, images []string) (*models.FeedPost, error) {
	if caption == "" {
		return nil, errs.New(errs.Validation, "caption is required")
	}
	if len(tags) == 0 {
		return nil, errs.New(errs.Validation, "at least one tag is required")
	}
	if len(images) == 0 {
		return nil, errs.New(errs.Validation, "at least one image is required")
	}

	oid, err := database.ObjectID(ownerID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var owner models.User
	err = s.db.Users().FindOne(ctx, bson.M{"_id": oid},
		options.FindOne().SetProjection(bson.M{"username": 1, "profilePicture": 1}),
	).Decode(&owner)
	if err == mongo.ErrNoDocuments {
		return nil, errs.New(errs.NotFound, "user not found")
	}
	if err != nil {
		return nil, errs.Wrap(errs.Persistence, "failed to fetch user", err)
	}

	post := models.Post{
		PostID:    database.NewID(),
		Caption:   caption,
		Tags:      normalizeTags(tags),
		Images:    normalizeImages(images),
		LikeCount: 0,
		Comments:  []models.Comment{},
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.Users().UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"posts": post}},
	)
	if err != nil {
		return nil, errs.Wrap(errs.Persistence, "failed to save post", err)
	}

	formatted := formatPost(owner.Username, owner.ProfilePicture, post)
	return &formatted, nil
}

// flatPost is one row of the unwound feed aggregation.
type flatPost struct {
	Username       string      `bson:"username"`
	ProfilePicture string      `bson:"profilePicture"`
	Post           models.Post `bson:"post"`
}

// List flattens every user's embedded posts into one sequence, sorts by
// the requested mode, and returns the requested page.
func (s *PostStore) List(ctx context.Context, page, pageSize int, mode models.SortMode) (*models.PostPage, error) {
	if page < 1 || pageSize < 1 {
		return nil, errs.New(errs.Validation, "page and pageSize must be positive")
	}

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "posts.0", Value: bson.D{{Key: "$exists", Value: true}}}}}},
		{{Key: "$unwind", Value: "$posts"}},
		{{Key: "$project", Value: bson.D{
			{Key: "username", Value: 1},
			{Key: "profilePicture", Value: 1},
			{Key: "post", Value: "$posts"},
		}}},
	}

	cursor, err := s.db.Users().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errs.Wrap(errs.Persistence, "failed to fetch posts", err)
	}
	defer cursor.Close(ctx)

	var rows []flatPost
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, errs.Wrap(errs.Persistence, "failed to decode posts", err)
	}

	feed := make([]models.FeedPost, len(rows))
	for i, r := range rows {
		feed[i] = formatPost(r.Username, r.ProfilePicture, r.Post)
	}

	return pageOf(sortFeed(feed, mode), page, pageSize)
}
