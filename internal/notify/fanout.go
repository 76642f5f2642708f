// Package notify implements the notification fan-out. Producers (message
// sends, calendar event creation) call it best-effort: a failed insert is
// logged and never turned into a failure of the write that triggered it.
package notify

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/facultyapp/faculty-backend/internal/data"
)

// AccountLister is the slice of the users store the fan-out needs to resolve
// broadcast recipients.
type AccountLister interface {
	ListOthers(ctx context.Context, exclude bson.ObjectID) ([]*data.User, error)
}

// Inserter is the slice of the notifications store the fan-out writes through.
type Inserter interface {
	Insert(ctx context.Context, recipientID bson.ObjectID, category, notifType, message, contextLabel string) (*data.Notification, error)
}

// Fanout creates notifications for one recipient or for everyone except the
// triggering account.
type Fanout struct {
	users  AccountLister
	notifs Inserter
	log    *zap.Logger
}

// New returns a Fanout wired with the account directory and notification store.
func New(users AccountLister, notifs Inserter, log *zap.Logger) *Fanout {
	return &Fanout{users: users, notifs: notifs, log: log}
}

// Notify creates a single notification. The caller decides whether a failure
// matters; message sends ignore it by design.
func (f *Fanout) Notify(ctx context.Context, recipientID bson.ObjectID, category, notifType, message, contextLabel string) error {
	_, err := f.notifs.Insert(ctx, recipientID, category, notifType, message, contextLabel)
	if err != nil {
		f.log.Warn("notification insert failed",
			zap.String("recipient_id", recipientID.Hex()),
			zap.String("type", notifType),
			zap.Error(err))
	}
	return err
}

// BroadcastExcept creates one notification per known account other than the
// excluded one and returns how many were created.
//
// The loop is deliberately non-transactional: an insert failure partway
// through leaves the already-created notifications in place, logs the failure
// and moves on to the next recipient. Reaching most recipients beats
// all-or-nothing for an advisory message. An error is returned only when the
// account list itself cannot be read.
func (f *Fanout) BroadcastExcept(ctx context.Context, excludedID bson.ObjectID, category, notifType, message, contextLabel string) (int, error) {
	recipients, err := f.users.ListOthers(ctx, excludedID)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, r := range recipients {
		if _, err := f.notifs.Insert(ctx, r.ID, category, notifType, message, contextLabel); err != nil {
			f.log.Error("broadcast insert failed, continuing",
				zap.String("recipient_id", r.ID.Hex()),
				zap.String("type", notifType),
				zap.Error(err))
			continue
		}
		created++
	}

	f.log.Info("broadcast fan-out complete",
		zap.String("type", notifType),
		zap.Int("recipients", len(recipients)),
		zap.Int("created", created))
	return created, nil
}
