package data

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MessagesStore provides the per-conversation append log.
type MessagesStore struct {
	coll *mongo.Collection
}

// NewMessagesStore returns a MessagesStore using the given collection.
func NewMessagesStore(coll *mongo.Collection) *MessagesStore {
	return &MessagesStore{coll: coll}
}

// Insert appends a message to a conversation with edited=false. The caller is
// responsible for checking that the sender is a participant.
func (m *MessagesStore) Insert(ctx context.Context, conversationID, senderID bson.ObjectID, content string) (*Message, error) {
	msg := &Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		Edited:         false,
		CreatedAt:      time.Now(),
	}

	result, err := m.coll.InsertOne(ctx, msg)
	if err != nil {
		return nil, err
	}

	msg.ID = result.InsertedID.(bson.ObjectID)
	return msg, nil
}

// ListByConversation returns the full thread in ascending creation order,
// insertion id breaking timestamp ties. No pagination.
func (m *MessagesStore) ListByConversation(ctx context.Context, conversationID bson.ObjectID) ([]*Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := m.coll.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Edit overwrites a message's content and marks it edited. Only the original
// sender may edit; the previous content is not retained.
func (m *MessagesStore) Edit(ctx context.Context, id, actorID bson.ObjectID, newContent string) (*Message, error) {
	if err := m.guard(ctx, id, actorID); err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Message
	err := m.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"content": newContent, "edited": true}},
		opts,
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// Delete removes a message permanently. Only the original sender may delete;
// no tombstone is left behind.
func (m *MessagesStore) Delete(ctx context.Context, id, actorID bson.ObjectID) error {
	if err := m.guard(ctx, id, actorID); err != nil {
		return err
	}

	result, err := m.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// guard is the ownership check shared by Edit and Delete: load the record and
// compare the sender to the actor before mutating anything.
func (m *MessagesStore) guard(ctx context.Context, id, actorID bson.ObjectID) error {
	var msg Message
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	if msg.SenderID != actorID {
		return ErrForbidden
	}
	return nil
}
