package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// FacultyStore manages faculty profiles and their lifecycle status. Status
// transitions are plain single-field updates driven by admin actions; the
// login gate just reads whatever status is current at that moment.
type FacultyStore struct {
	coll *mongo.Collection
}

// NewFacultyStore returns a FacultyStore using the provided collection.
func NewFacultyStore(coll *mongo.Collection) *FacultyStore {
	return &FacultyStore{coll: coll}
}

// CreateProfile inserts a faculty profile in PENDING state for the given user.
func (f *FacultyStore) CreateProfile(ctx context.Context, userID bson.ObjectID, name, phone, address, subjects, specialisation string) (*FacultyProfile, error) {
	now := time.Now()
	profile := &FacultyProfile{
		UserID:         userID,
		Name:           name,
		Phone:          phone,
		Address:        address,
		Subjects:       subjects,
		Specialisation: specialisation,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	result, err := f.coll.InsertOne(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("profile for user %s: %w", userID.Hex(), ErrDuplicate)
		}
		return nil, err
	}

	profile.ID = result.InsertedID.(bson.ObjectID)
	return profile, nil
}

// GetByUserID returns the profile attached to an account.
func (f *FacultyStore) GetByUserID(ctx context.Context, userID bson.ObjectID) (*FacultyProfile, error) {
	var profile FacultyProfile
	err := f.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// SetStatus updates the lifecycle status of a profile by its id.
func (f *FacultyStore) SetStatus(ctx context.Context, id bson.ObjectID, status FacultyStatus) error {
	result, err := f.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByStatus returns profiles in the given state, oldest first. Used by the
// admin pending queue.
func (f *FacultyStore) ListByStatus(ctx context.Context, status FacultyStatus) ([]*FacultyProfile, error) {
	return f.list(ctx, bson.M{"status": status})
}

// ListAll returns every faculty profile, oldest first.
func (f *FacultyStore) ListAll(ctx context.Context) ([]*FacultyProfile, error) {
	return f.list(ctx, bson.M{})
}

func (f *FacultyStore) list(ctx context.Context, filter bson.M) ([]*FacultyProfile, error) {
	opts := options.Find().SetSort(bson.M{"created_at": 1})

	cursor, err := f.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []*FacultyProfile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}
