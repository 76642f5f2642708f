package data

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// ConversationsStore manages the unique channel between two accounts.
type ConversationsStore struct {
	coll *mongo.Collection
}

// NewConversationsStore returns a ConversationsStore using the given collection.
func NewConversationsStore(coll *mongo.Collection) *ConversationsStore {
	return &ConversationsStore{coll: coll}
}

// ErrSameParticipant is returned when both sides of a conversation are the
// same account.
var ErrSameParticipant = errors.New("conversation requires two distinct participants")

// FindOrCreate returns the conversation between two accounts, creating it on
// first contact. The pair is canonicalized before lookup so (a,b) and (b,a)
// always resolve to the same document.
//
// The creation path races under concurrency: both callers may miss the lookup
// and insert. The unique index on (participant_low, participant_high) makes
// the second insert fail with a duplicate-key error, and the loser refetches
// the winner's document instead of surfacing the conflict.
func (c *ConversationsStore) FindOrCreate(ctx context.Context, a, b bson.ObjectID) (*Conversation, error) {
	if a == b {
		return nil, ErrSameParticipant
	}

	low, high := canonicalPair(a, b)
	filter := bson.M{"participant_low": low, "participant_high": high}

	var conv Conversation
	err := c.coll.FindOne(ctx, filter).Decode(&conv)
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	created := &Conversation{
		ParticipantLow:  low,
		ParticipantHigh: high,
		CreatedAt:       time.Now(),
	}

	result, err := c.coll.InsertOne(ctx, created)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost the creation race; the winner's record is canonical.
			if err := c.coll.FindOne(ctx, filter).Decode(&conv); err != nil {
				return nil, err
			}
			return &conv, nil
		}
		return nil, err
	}

	created.ID = result.InsertedID.(bson.ObjectID)
	return created, nil
}

// GetByID returns a conversation by its id.
func (c *ConversationsStore) GetByID(ctx context.Context, id bson.ObjectID) (*Conversation, error) {
	var conv Conversation
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&conv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}
