package main

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/facultyapp/faculty-backend/internal/auth"
	"github.com/facultyapp/faculty-backend/internal/data"
)

// The store interfaces below are the slices of internal/data the handlers
// consume; tests substitute in-memory fakes.

type userDirectory interface {
	CreateUser(ctx context.Context, email, hashedPassword string, role data.Role) (*data.User, error)
	GetUserByEmail(ctx context.Context, email string) (*data.User, error)
	GetUserByID(ctx context.Context, id bson.ObjectID) (*data.User, error)
	ListOthers(ctx context.Context, exclude bson.ObjectID) ([]*data.User, error)
}

type facultyDirectory interface {
	CreateProfile(ctx context.Context, userID bson.ObjectID, name, phone, address, subjects, specialisation string) (*data.FacultyProfile, error)
	GetByUserID(ctx context.Context, userID bson.ObjectID) (*data.FacultyProfile, error)
	SetStatus(ctx context.Context, id bson.ObjectID, status data.FacultyStatus) error
	ListByStatus(ctx context.Context, status data.FacultyStatus) ([]*data.FacultyProfile, error)
	ListAll(ctx context.Context) ([]*data.FacultyProfile, error)
}

type conversationDirectory interface {
	FindOrCreate(ctx context.Context, a, b bson.ObjectID) (*data.Conversation, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*data.Conversation, error)
}

type messageThread interface {
	Insert(ctx context.Context, conversationID, senderID bson.ObjectID, content string) (*data.Message, error)
	ListByConversation(ctx context.Context, conversationID bson.ObjectID) ([]*data.Message, error)
	Edit(ctx context.Context, id, actorID bson.ObjectID, newContent string) (*data.Message, error)
	Delete(ctx context.Context, id, actorID bson.ObjectID) error
}

type notificationInbox interface {
	ListByRecipient(ctx context.Context, recipientID bson.ObjectID) ([]*data.Notification, error)
	MarkRead(ctx context.Context, id, actorID bson.ObjectID) error
	Delete(ctx context.Context, id, actorID bson.ObjectID) error
}

type eventCalendar interface {
	Insert(ctx context.Context, event *data.CalendarEvent) (*data.CalendarEvent, error)
	ListUpcoming(ctx context.Context, from time.Time) ([]*data.CalendarEvent, error)
	Delete(ctx context.Context, id, actorID bson.ObjectID) error
}

type notifier interface {
	Notify(ctx context.Context, recipientID bson.ObjectID, category, notifType, message, contextLabel string) error
	BroadcastExcept(ctx context.Context, excludedID bson.ObjectID, category, notifType, message, contextLabel string) (int, error)
}

// Server holds the stores, token manager and logger the handlers use.
type Server struct {
	users   userDirectory
	faculty facultyDirectory
	convos  conversationDirectory
	msgs    messageThread
	notifs  notificationInbox
	events  eventCalendar
	fanout  notifier
	auth    *auth.JWTManager
	log     *zap.Logger
}

// newServer returns a ready-to-use Server wired with its collaborators.
func newServer(
	users userDirectory,
	faculty facultyDirectory,
	convos conversationDirectory,
	msgs messageThread,
	notifs notificationInbox,
	events eventCalendar,
	fanout notifier,
	authMgr *auth.JWTManager,
	log *zap.Logger,
) *Server {
	return &Server{
		users:   users,
		faculty: faculty,
		convos:  convos,
		msgs:    msgs,
		notifs:  notifs,
		events:  events,
		fanout:  fanout,
		auth:    authMgr,
		log:     log,
	}
}
