package data

import (
	"context"
	"os"
	"testing"

	"github.com/facultyapp/faculty-backend/internal/db"
)

// The tests in this package are integration tests and require a running
// MongoDB instance. Set MONGODB_URI in the environment before running them.

func setupDB(t *testing.T) *db.Client {
	t.Helper()

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set; skipping integration test")
	}

	ctx := context.Background()
	c, err := db.New(ctx, uri)
	if err != nil {
		t.Fatalf("db.New failed: %v", err)
	}

	dropAll := func() {
		_ = c.UsersCollection().Drop(ctx)
		_ = c.FacultyProfilesCollection().Drop(ctx)
		_ = c.ConversationsCollection().Drop(ctx)
		_ = c.MessagesCollection().Drop(ctx)
		_ = c.NotificationsCollection().Drop(ctx)
		_ = c.CalendarEventsCollection().Drop(ctx)
	}

	// clean collections in case previous runs left data, then recreate the
	// indexes the stores depend on (the conversation uniqueness test needs them)
	dropAll()
	if err := c.CreateIndexes(ctx); err != nil {
		t.Fatalf("CreateIndexes failed: %v", err)
	}

	t.Cleanup(func() {
		dropAll()
		_ = c.Close(context.Background())
	})

	return c
}
