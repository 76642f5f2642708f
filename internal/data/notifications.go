package data

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// NotificationsStore provides the per-recipient inbox.
type NotificationsStore struct {
	coll *mongo.Collection
}

// NewNotificationsStore returns a NotificationsStore using the given collection.
func NewNotificationsStore(coll *mongo.Collection) *NotificationsStore {
	return &NotificationsStore{coll: coll}
}

// Insert creates one notification for a recipient. No validation beyond
// presence; category and type are free-form labels set by the producer.
func (n *NotificationsStore) Insert(ctx context.Context, recipientID bson.ObjectID, category, notifType, message, contextLabel string) (*Notification, error) {
	notif := &Notification{
		RecipientID: recipientID,
		Category:    category,
		Type:        notifType,
		Message:     message,
		Context:     contextLabel,
		Read:        false,
		Muted:       false,
		CreatedAt:   time.Now(),
	}

	result, err := n.coll.InsertOne(ctx, notif)
	if err != nil {
		return nil, err
	}

	notif.ID = result.InsertedID.(bson.ObjectID)
	return notif, nil
}

// ListByRecipient returns a recipient's notifications, most recent first.
func (n *NotificationsStore) ListByRecipient(ctx context.Context, recipientID bson.ObjectID) ([]*Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := n.coll.Find(ctx, bson.M{"recipient_id": recipientID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifs []*Notification
	if err = cursor.All(ctx, &notifs); err != nil {
		return nil, err
	}
	return notifs, nil
}

// MarkRead sets the read flag. Only the recipient may do this.
func (n *NotificationsStore) MarkRead(ctx context.Context, id, actorID bson.ObjectID) error {
	if err := n.guard(ctx, id, actorID); err != nil {
		return err
	}

	_, err := n.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}

// Delete removes a notification. Only the recipient may do this.
func (n *NotificationsStore) Delete(ctx context.Context, id, actorID bson.ObjectID) error {
	if err := n.guard(ctx, id, actorID); err != nil {
		return err
	}

	_, err := n.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// guard loads the notification and rejects actors other than the recipient
// before any mutation happens.
func (n *NotificationsStore) guard(ctx context.Context, id, actorID bson.ObjectID) error {
	var notif Notification
	err := n.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&notif)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	if notif.RecipientID != actorID {
		return ErrForbidden
	}
	return nil
}
