package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MJS022423/GlamURe/errs"
)

// DB is the persistence gateway. It owns the Mongo client and hands out
// named collections. Construct it with Connect and pass it down; nothing
// else in the codebase holds a client.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials Mongo, pings it, and returns a ready gateway.
func Connect(ctx context.Context, uri, name string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errs.Wrap(errs.Persistence, "failed to connect to MongoDB", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, errs.Wrap(errs.Persistence, "MongoDB ping failed", err)
	}

	return &DB{client: client, db: client.Database(name)}, nil
}

// Close disconnects the client. Callers log failures here; a teardown
// error must never mask a response already sent.
func (d *DB) Close(ctx context.Context) error {
	if d.client == nil {
		return nil
	}
	if err := d.client.Disconnect(ctx); err != nil {
		return errs.Wrap(errs.Persistence, "failed to disconnect from MongoDB", err)
	}
	return nil
}

func (d *DB) Users() *mongo.Collection         { return d.db.Collection("users") }
func (d *DB) Likes() *mongo.Collection         { return d.db.Collection("likes") }
func (d *DB) Subscriptions() *mongo.Collection { return d.db.Collection("subscriptions") }

// EnsureIndexes creates the indexes the toggles depend on. The unique
// index on likes(postId,userId) is what makes the loser of two concurrent
// like inserts fail cleanly instead of duplicating the relation.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	_, err := d.Likes().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "postId", Value: 1}, {Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errs.Wrap(errs.Persistence, "failed to create likes index", err)
	}

	_, err = d.Users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errs.Wrap(errs.Persistence, "failed to create users index", err)
	}

	_, err = d.Subscriptions().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errs.Wrap(errs.Persistence, "failed to create subscriptions index", err)
	}

	return nil
}

// ObjectID converts an opaque string identifier from the core's boundary
// into the storage representation. Identifiers stay plain strings
// everywhere outside this package.
func ObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errs.Newf(errs.Validation, "invalid id %q", id)
	}
	return oid, nil
}

// NewID mints a fresh opaque identifier for application-owned keys
// (post ids, comment ids).
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// WithTimeout bounds a unit of work the way every store expects: one
// request either completes its round-trips or times out.
func WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 10*time.Second)
}
