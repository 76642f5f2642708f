// Package db manages the MongoDB connection and collections.
package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const databaseName = "faculty_db"

// Client wraps mongo.Client and exposes the application's collections.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB, verifies the connection with a ping and returns a
// Client scoped to the faculty database.
func New(ctx context.Context, mongoURI string) (*Client, error) {
	opts := options.Client().
		ApplyURI(mongoURI).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Client{
		client: client,
		db:     client.Database(databaseName),
	}, nil
}

// UsersCollection returns the users collection.
func (c *Client) UsersCollection() *mongo.Collection {
	return c.db.Collection("users")
}

// FacultyProfilesCollection returns the faculty_profiles collection.
func (c *Client) FacultyProfilesCollection() *mongo.Collection {
	return c.db.Collection("faculty_profiles")
}

// ConversationsCollection returns the conversations collection.
func (c *Client) ConversationsCollection() *mongo.Collection {
	return c.db.Collection("conversations")
}

// MessagesCollection returns the messages collection.
func (c *Client) MessagesCollection() *mongo.Collection {
	return c.db.Collection("messages")
}

// NotificationsCollection returns the notifications collection.
func (c *Client) NotificationsCollection() *mongo.Collection {
	return c.db.Collection("notifications")
}

// CalendarEventsCollection returns the calendar_events collection.
func (c *Client) CalendarEventsCollection() *mongo.Collection {
	return c.db.Collection("calendar_events")
}

// Close disconnects from MongoDB.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// CreateIndexes creates the indexes the stores rely on. The unique indexes are
// load-bearing: email uniqueness backs registration, and the canonical
// participant pair index is what guarantees at most one conversation per pair
// under concurrent creation.
func (c *Client) CreateIndexes(ctx context.Context) error {
	usersIndex := mongo.IndexModel{
		Keys:    map[string]int{"email": 1},
		Options: options.Index().SetUnique(true),
	}
	if _, err := c.UsersCollection().Indexes().CreateOne(ctx, usersIndex); err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	// One profile per user.
	profilesIndex := mongo.IndexModel{
		Keys:    map[string]int{"user_id": 1},
		Options: options.Index().SetUnique(true),
	}
	if _, err := c.FacultyProfilesCollection().Indexes().CreateOne(ctx, profilesIndex); err != nil {
		return fmt.Errorf("failed to create faculty profiles index: %w", err)
	}

	// The conversation uniqueness constraint on the sorted pair. Concurrent
	// FindOrCreate callers race on the insert; the loser gets a duplicate-key
	// error and refetches the winner's document.
	conversationsIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "participant_low", Value: 1}, {Key: "participant_high", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := c.ConversationsCollection().Indexes().CreateOne(ctx, conversationsIndex); err != nil {
		return fmt.Errorf("failed to create conversations index: %w", err)
	}

	messagesIndex := mongo.IndexModel{
		// Thread reads: all messages of a conversation in append order.
		Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "created_at", Value: 1}},
	}
	if _, err := c.MessagesCollection().Indexes().CreateOne(ctx, messagesIndex); err != nil {
		return fmt.Errorf("failed to create messages index: %w", err)
	}

	notificationsIndex := mongo.IndexModel{
		// Inbox reads: a recipient's notifications, most recent first.
		Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}},
	}
	if _, err := c.NotificationsCollection().Indexes().CreateOne(ctx, notificationsIndex); err != nil {
		return fmt.Errorf("failed to create notifications index: %w", err)
	}

	eventsIndex := mongo.IndexModel{
		Keys: map[string]int{"date": 1},
	}
	if _, err := c.CalendarEventsCollection().Indexes().CreateOne(ctx, eventsIndex); err != nil {
		return fmt.Errorf("failed to create calendar events index: %w", err)
	}

	return nil
}
