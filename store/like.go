package store

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MJS022423/GlamURe/database"
	"github.com/MJS022423/GlamURe/errs"
	"github.com/MJS022423/GlamURe/models"
)

// LikeStore flips like state. The insert into the likes collection is
// the atomic decision point: the unique (postId,userId) index makes the
// loser of two concurrent toggles fail over to the delete path instead
// of double-inserting, and the counter update is tied to whichever
// mutation actually happened.
type LikeStore struct {
	db *database.DB
}

func NewLikeStore(db *database.DB) *LikeStore {
	return &LikeStore{db: db}
}

var _ models.LikeService = &LikeStore{}

// Toggle likes the post for the user, or unlikes it if a like record
// already exists. Calling it twice in sequence restores the original
// state and count.
func (s *LikeStore) Toggle(ctx context.Context, postID, userID string) (*models.LikeResult, error) {
	if postID == "" {
		return nil, errs.New(errs.Validation, "post ID is required")
	}
	uid, err := database.ObjectID(userID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	n, err := s.db.Users().CountDocuments(ctx, bson.M{"posts.postId": postID})
	if err != nil {
		return nil, errs.Wrap(errs.Persistence, "failed to resolve post", err)
	}
	if n == 0 {
		return nil, errs.New(errs.NotFound, "post not found")
	}

	record := models.Like{PostID: postID, UserID: uid, CreatedAt: time.Now().UTC()}

	var liked bool
	_, err = s.db.Likes().InsertOne(ctx, record)
	switch {
	case err == nil:
		liked = true
		_, err = s.db.Users().UpdateOne(ctx,
			bson.M{"posts.postId": postID},
			bson.M{"$inc": bson.M{"posts.$.likeCount": 1}},
		)
		if err != nil {
			return nil, errs.Wrap(errs.Persistence, "failed to update like count", err)
		}

	case mongo.IsDuplicateKeyError(err):
		// Already liked: this toggle is an unlike.
		res, err := s.db.Likes().DeleteOne(ctx, bson.M{"postId": postID, "userId": uid})
		if err != nil {
			return nil, errs.Wrap(errs.Persistence, "failed to remove like", err)
		}
		if res.DeletedCount == 1 {
			// The $elemMatch guard floors the counter at zero.
			ur, err := s.db.Users().UpdateOne(ctx,
				bson.M{"posts": bson.M{"$elemMatch": bson.M{"postId": postID, "likeCount": bson.M{"$gt": 0}}}},
				bson.M{"$inc": bson.M{"posts.$.likeCount": -1}},
			)
			if err != nil {
				return nil, errs.Wrap(errs.Persistence, "failed to update like count", err)
			}
			if ur.ModifiedCount == 0 {
				// Counter drifted from the relation; recompute it.
				s.reconcile(ctx, postID)
			}
		}

	default:
		return nil, errs.Wrap(errs.Persistence, "failed to record like", err)
	}

	count, err := s.likeCountOf(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &models.LikeResult{Liked: liked, Likes: count}, nil
}

// likeCountOf reads the cached counter back off the embedded post.
func (s *LikeStore) likeCountOf(ctx context.Context, postID string) (int64, error) {
	var owner models.User
	err := s.db.Users().FindOne(ctx,
		bson.M{"posts.postId": postID},
		options.FindOne().SetProjection(bson.M{"posts.$": 1}),
	).Decode(&owner)
	if err == mongo.ErrNoDocuments {
		return 0, errs.New(errs.NotFound, "post not found")
	}
	if err != nil {
		return 0, errs.Wrap(errs.Persistence, "failed to read like count", err)
	}
	if len(owner.Posts) == 0 {
		return 0, errs.New(errs.NotFound, "post not found")
	}
	return owner.Posts[0].LikeCount, nil
}

// reconcile self-heals a drifted counter from the relation, which is the
// source of truth. Best effort: a failure leaves the repair to the next
// detected drift.
func (s *LikeStore) reconcile(ctx context.Context, postID string) {
	n, err := s.db.Likes().CountDocuments(ctx, bson.M{"postId": postID})
	if err != nil {
		log.Printf("like reconcile count failed for post %s: %v", postID, err)
		return
	}
	_, err = s.db.Users().UpdateOne(ctx,
		bson.M{"posts.postId": postID},
		bson.M{"$set": bson.M{"posts.$.likeCount": n}},
	)
	if err != nil {
		log.Printf("like reconcile update failed for post %s: %v", postID, err)
	}
}
