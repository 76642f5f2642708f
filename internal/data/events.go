package data

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EventsStore manages shared calendar events. Event creation is the second
// producer of notifications (besides message sends).
type EventsStore struct {
	coll *mongo.Collection
}

// NewEventsStore returns an EventsStore using the given collection.
func NewEventsStore(coll *mongo.Collection) *EventsStore {
	return &EventsStore{coll: coll}
}

// Insert creates a calendar event owned by the given account.
func (e *EventsStore) Insert(ctx context.Context, event *CalendarEvent) (*CalendarEvent, error) {
	event.UserEvent = true
	event.CreatedAt = time.Now()

	result, err := e.coll.InsertOne(ctx, event)
	if err != nil {
		return nil, err
	}

	event.ID = result.InsertedID.(bson.ObjectID)
	return event, nil
}

// ListUpcoming returns events dated from the given day onward, soonest first.
func (e *EventsStore) ListUpcoming(ctx context.Context, from time.Time) ([]*CalendarEvent, error) {
	opts := options.Find().SetSort(bson.M{"date": 1})

	cursor, err := e.coll.Find(ctx, bson.M{"date": bson.M{"$gte": from}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*CalendarEvent
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Delete removes an event. Only its creator may do this.
func (e *EventsStore) Delete(ctx context.Context, id, actorID bson.ObjectID) error {
	var event CalendarEvent
	err := e.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	if event.CreatedBy != actorID {
		return ErrForbidden
	}

	_, err = e.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
