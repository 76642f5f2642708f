package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestFacultyProfileLifecycle(t *testing.T) {
	c := setupDB(t)
	store := NewFacultyStore(c.FacultyProfilesCollection())
	ctx := context.Background()

	userID := bson.NewObjectID()
	profile, err := store.CreateProfile(ctx, userID, "Dr. Jane Mensah", "0801", "Main Campus", "Java,DSA", "Distributed Systems")
	require.NoError(t, err)
	require.Equal(t, StatusPending, profile.Status)

	// one profile per user
	_, err = store.CreateProfile(ctx, userID, "dup", "", "", "", "")
	require.ErrorIs(t, err, ErrDuplicate)

	got, err := store.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, profile.ID, got.ID)

	// approve, then deactivate; each status is just what the next read sees
	require.NoError(t, store.SetStatus(ctx, profile.ID, StatusActive))
	got, err = store.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, StatusActive, got.Status)

	require.NoError(t, store.SetStatus(ctx, profile.ID, StatusInactive))
	got, err = store.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, StatusInactive, got.Status)

	require.ErrorIs(t, store.SetStatus(ctx, bson.NewObjectID(), StatusActive), ErrNotFound)
}

func TestFacultyListByStatus(t *testing.T) {
	c := setupDB(t)
	store := NewFacultyStore(c.FacultyProfilesCollection())
	ctx := context.Background()

	p1, err := store.CreateProfile(ctx, bson.NewObjectID(), "Pending One", "", "", "", "")
	require.NoError(t, err)
	p2, err := store.CreateProfile(ctx, bson.NewObjectID(), "Approved One", "", "", "", "")
	require.NoError(t, err)
	require.NoError(t, store.SetStatus(ctx, p2.ID, StatusActive))

	pending, err := store.ListByStatus(ctx, StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, p1.ID, pending[0].ID)

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
