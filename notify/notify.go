// Package notify delivers web-push notifications to post owners when
// someone likes or comments on their post.
package notify

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MJS022423/GlamURe/database"
	"github.com/MJS022423/GlamURe/errs"
)

// Subscription is one user's push endpoint, at most one per user.
type Subscription struct {
	ID     primitive.ObjectID   `bson:"_id,omitempty"`
	UserID primitive.ObjectID   `bson:"userId"`
	Sub    webpush.Subscription `bson:"sub"`
}

// Notifier persists subscriptions and sends pushes. Sending happens on a
// goroutine; a failed push is logged, never surfaced to the request that
// triggered it.
type Notifier struct {
	db         *database.DB
	publicKey  string
	privateKey string
	subscriber string
}

// New builds a notifier. When no VAPID key pair is configured one is
// generated and logged, which only suits development.
func New(db *database.DB, publicKey, privateKey, subscriber string) (*Notifier, error) {
	if publicKey == "" || privateKey == "" {
		var err error
		privateKey, publicKey, err = webpush.GenerateVAPIDKeys()
		if err != nil {
			return nil, errs.Wrap(errs.Persistence, "failed to generate VAPID keys", err)
		}
		log.Println("generated ephemeral VAPID keys; set VAPID_PUBLIC_KEY and VAPID_PRIVATE_KEY for production")
	}
	return &Notifier{
		db:         db,
		publicKey:  publicKey,
		privateKey: privateKey,
		subscriber: subscriber,
	}, nil
}

// PublicKey is what browsers need to subscribe.
func (n *Notifier) PublicKey() string { return n.publicKey }

// Subscribe upserts the user's push endpoint.
func (n *Notifier) Subscribe(ctx context.Context, userID string, sub webpush.Subscription) error {
	uid, err := database.ObjectID(userID)
	if err != nil {
		return err
	}

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	_, err = n.db.Subscriptions().UpdateOne(ctx,
		bson.M{"userId": uid},
		bson.M{"$set": Subscription{UserID: uid, Sub: sub}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return errs.Wrap(errs.Persistence, "failed to save subscription", err)
	}
	return nil
}

// PostLiked notifies the post's owner that someone liked it.
func (n *Notifier) PostLiked(postID, likerName string) {
	if likerName == "" {
		likerName = "Someone"
	}
	n.notifyOwner(postID, likerName+" liked your post")
}

// CommentAdded notifies the post's owner about a new comment.
func (n *Notifier) CommentAdded(postID, authorName, text string) {
	if authorName == "" {
		authorName = "Someone"
	}
	if len(text) > 100 {
		text = text[:100] + "..."
	}
	n.notifyOwner(postID, authorName+" commented: "+text)
}

func (n *Notifier) notifyOwner(postID, body string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic in push notification: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var owner struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		err := n.db.Users().FindOne(ctx,
			bson.M{"posts.postId": postID},
			options.FindOne().SetProjection(bson.M{"_id": 1}),
		).Decode(&owner)
		if err != nil {
			if err != mongo.ErrNoDocuments {
				log.Printf("failed to resolve owner of post %s: %v", postID, err)
			}
			return
		}

		var sub Subscription
		err = n.db.Subscriptions().FindOne(ctx, bson.M{"userId": owner.ID}).Decode(&sub)
		if err == mongo.ErrNoDocuments {
			return
		}
		if err != nil {
			log.Printf("failed to find subscription for user %s: %v", owner.ID.Hex(), err)
			return
		}

		payload, err := json.Marshal(map[string]interface{}{
			"title": "GlamURe",
			"body":  body,
			"data":  map[string]interface{}{"postId": postID, "timestamp": time.Now().Unix()},
		})
		if err != nil {
			log.Printf("failed to marshal push payload: %v", err)
			return
		}

		resp, err := webpush.SendNotification(payload, &sub.Sub, &webpush.Options{
			Subscriber:      n.subscriber,
			VAPIDPublicKey:  n.publicKey,
			VAPIDPrivateKey: n.privateKey,
			TTL:             30,
		})
		if resp != nil {
			defer resp.Body.Close()
		}
		if err != nil {
			log.Printf("failed to send push to user %s: %v", owner.ID.Hex(), err)
			return
		}

		// The push service reports an expired or revoked subscription
		// with 410; drop it so we stop pushing to a dead endpoint.
		// SendNotification does not treat a rejection as an error.
		if resp.StatusCode == http.StatusGone {
			if _, delErr := n.db.Subscriptions().DeleteOne(ctx, bson.M{"userId": owner.ID}); delErr != nil {
				log.Printf("failed to delete expired subscription: %v", delErr)
			}
			return
		}
		if resp.StatusCode >= http.StatusBadRequest {
			log.Printf("push to user %s rejected with status %d", owner.ID.Hex(), resp.StatusCode)
		}
	}()
}
