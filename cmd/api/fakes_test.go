package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/facultyapp/faculty-backend/internal/auth"
	"github.com/facultyapp/faculty-backend/internal/data"
	"github.com/facultyapp/faculty-backend/internal/middleware"
	"github.com/facultyapp/faculty-backend/internal/normalize"
	"github.com/facultyapp/faculty-backend/internal/notify"
)

// In-memory fakes for the store interfaces. They mirror the real stores'
// ownership and uniqueness semantics so handler tests exercise the same
// branches without a database.

type fakeUsers struct {
	list    []*data.User
	listErr error
}

func (f *fakeUsers) CreateUser(_ context.Context, email, hashedPassword string, role data.Role) (*data.User, error) {
	email = normalize.Email(email)
	for _, u := range f.list {
		if u.Email == email {
			return nil, data.ErrDuplicate
		}
	}
	u := &data.User{
		ID:        bson.NewObjectID(),
		Email:     email,
		Password:  hashedPassword,
		Role:      role,
		Enabled:   true,
		CreatedAt: time.Now(),
	}
	f.list = append(f.list, u)
	return u, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*data.User, error) {
	email = normalize.Email(email)
	for _, u := range f.list {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, data.ErrNotFound
}

func (f *fakeUsers) GetUserByID(_ context.Context, id bson.ObjectID) (*data.User, error) {
	for _, u := range f.list {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, data.ErrNotFound
}

func (f *fakeUsers) ListOthers(_ context.Context, exclude bson.ObjectID) ([]*data.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*data.User
	for _, u := range f.list {
		if u.ID != exclude {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeFaculty struct {
	list []*data.FacultyProfile
}

func (f *fakeFaculty) CreateProfile(_ context.Context, userID bson.ObjectID, name, phone, address, subjects, specialisation string) (*data.FacultyProfile, error) {
	for _, p := range f.list {
		if p.UserID == userID {
			return nil, data.ErrDuplicate
		}
	}
	p := &data.FacultyProfile{
		ID:             bson.NewObjectID(),
		UserID:         userID,
		Name:           name,
		Phone:          phone,
		Address:        address,
		Subjects:       subjects,
		Specialisation: specialisation,
		Status:         data.StatusPending,
		CreatedAt:      time.Now(),
	}
	f.list = append(f.list, p)
	return p, nil
}

func (f *fakeFaculty) GetByUserID(_ context.Context, userID bson.ObjectID) (*data.FacultyProfile, error) {
	for _, p := range f.list {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, data.ErrNotFound
}

func (f *fakeFaculty) SetStatus(_ context.Context, id bson.ObjectID, status data.FacultyStatus) error {
	for _, p := range f.list {
		if p.ID == id {
			p.Status = status
			return nil
		}
	}
	return data.ErrNotFound
}

func (f *fakeFaculty) ListByStatus(_ context.Context, status data.FacultyStatus) ([]*data.FacultyProfile, error) {
	var out []*data.FacultyProfile
	for _, p := range f.list {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeFaculty) ListAll(_ context.Context) ([]*data.FacultyProfile, error) {
	return f.list, nil
}

type fakeConvos struct {
	list []*data.Conversation
}

func (f *fakeConvos) FindOrCreate(_ context.Context, a, b bson.ObjectID) (*data.Conversation, error) {
	if a == b {
		return nil, data.ErrSameParticipant
	}
	low, high := a, b
	if bytes.Compare(b[:], a[:]) < 0 {
		low, high = b, a
	}
	for _, c := range f.list {
		if c.ParticipantLow == low && c.ParticipantHigh == high {
			return c, nil
		}
	}
	c := &data.Conversation{
		ID:              bson.NewObjectID(),
		ParticipantLow:  low,
		ParticipantHigh: high,
		CreatedAt:       time.Now(),
	}
	f.list = append(f.list, c)
	return c, nil
}

func (f *fakeConvos) GetByID(_ context.Context, id bson.ObjectID) (*data.Conversation, error) {
	for _, c := range f.list {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, data.ErrNotFound
}

type fakeMsgs struct {
	list []*data.Message
}

func (f *fakeMsgs) Insert(_ context.Context, conversationID, senderID bson.ObjectID, content string) (*data.Message, error) {
	m := &data.Message{
		ID:             bson.NewObjectID(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	f.list = append(f.list, m)
	return m, nil
}

func (f *fakeMsgs) ListByConversation(_ context.Context, conversationID bson.ObjectID) ([]*data.Message, error) {
	var out []*data.Message
	for _, m := range f.list {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMsgs) Edit(_ context.Context, id, actorID bson.ObjectID, newContent string) (*data.Message, error) {
	for _, m := range f.list {
		if m.ID != id {
			continue
		}
		if m.SenderID != actorID {
			return nil, data.ErrForbidden
		}
		m.Content = newContent
		m.Edited = true
		return m, nil
	}
	return nil, data.ErrNotFound
}

func (f *fakeMsgs) Delete(_ context.Context, id, actorID bson.ObjectID) error {
	for i, m := range f.list {
		if m.ID != id {
			continue
		}
		if m.SenderID != actorID {
			return data.ErrForbidden
		}
		f.list = append(f.list[:i], f.list[i+1:]...)
		return nil
	}
	return data.ErrNotFound
}

// fakeNotifs backs both the handlers' inbox interface and the fan-out's
// Inserter, so the real notify.Fanout runs in handler tests.
type fakeNotifs struct {
	list    []*data.Notification
	failFor map[bson.ObjectID]bool
}

func (f *fakeNotifs) Insert(_ context.Context, recipientID bson.ObjectID, category, notifType, message, contextLabel string) (*data.Notification, error) {
	if f.failFor[recipientID] {
		return nil, io.ErrUnexpectedEOF
	}
	n := &data.Notification{
		ID:          bson.NewObjectID(),
		RecipientID: recipientID,
		Category:    category,
		Type:        notifType,
		Message:     message,
		Context:     contextLabel,
		CreatedAt:   time.Now(),
	}
	f.list = append(f.list, n)
	return n, nil
}

func (f *fakeNotifs) ListByRecipient(_ context.Context, recipientID bson.ObjectID) ([]*data.Notification, error) {
	var out []*data.Notification
	// most recent first
	for i := len(f.list) - 1; i >= 0; i-- {
		if f.list[i].RecipientID == recipientID {
			out = append(out, f.list[i])
		}
	}
	return out, nil
}

func (f *fakeNotifs) MarkRead(_ context.Context, id, actorID bson.ObjectID) error {
	for _, n := range f.list {
		if n.ID != id {
			continue
		}
		if n.RecipientID != actorID {
			return data.ErrForbidden
		}
		n.Read = true
		return nil
	}
	return data.ErrNotFound
}

func (f *fakeNotifs) Delete(_ context.Context, id, actorID bson.ObjectID) error {
	for i, n := range f.list {
		if n.ID != id {
			continue
		}
		if n.RecipientID != actorID {
			return data.ErrForbidden
		}
		f.list = append(f.list[:i], f.list[i+1:]...)
		return nil
	}
	return data.ErrNotFound
}

type fakeEvents struct {
	list []*data.CalendarEvent
}

func (f *fakeEvents) Insert(_ context.Context, event *data.CalendarEvent) (*data.CalendarEvent, error) {
	event.ID = bson.NewObjectID()
	event.UserEvent = true
	event.CreatedAt = time.Now()
	f.list = append(f.list, event)
	return event, nil
}

func (f *fakeEvents) ListUpcoming(_ context.Context, from time.Time) ([]*data.CalendarEvent, error) {
	var out []*data.CalendarEvent
	for _, e := range f.list {
		if !e.Date.Before(from) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEvents) Delete(_ context.Context, id, actorID bson.ObjectID) error {
	for i, e := range f.list {
		if e.ID != id {
			continue
		}
		if e.CreatedBy != actorID {
			return data.ErrForbidden
		}
		f.list = append(f.list[:i], f.list[i+1:]...)
		return nil
	}
	return data.ErrNotFound
}

type testEnv struct {
	srv     *Server
	handler http.Handler
	users   *fakeUsers
	faculty *fakeFaculty
	convos  *fakeConvos
	msgs    *fakeMsgs
	notifs  *fakeNotifs
	events  *fakeEvents
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := &fakeUsers{}
	faculty := &fakeFaculty{}
	convos := &fakeConvos{}
	msgs := &fakeMsgs{}
	notifs := &fakeNotifs{}
	events := &fakeEvents{}

	log := zap.NewNop()
	fanout := notify.New(users, notifs, log)
	authMgr := auth.NewJWTManager("test-secret", time.Hour)

	srv := newServer(users, faculty, convos, msgs, notifs, events, fanout, authMgr, log)

	limiter := middleware.NewLimiterStore(6000, 100, time.Minute)
	t.Cleanup(limiter.Stop)

	return &testEnv{
		srv:     srv,
		handler: srv.routes(limiter),
		users:   users,
		faculty: faculty,
		convos:  convos,
		msgs:    msgs,
		notifs:  notifs,
		events:  events,
	}
}

// addUser seeds an account directly; the password is stored hashed like the
// registration path would.
func (e *testEnv) addUser(t *testing.T, email, password string, role data.Role) *data.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)
	u, err := e.users.CreateUser(context.Background(), email, hashed, role)
	require.NoError(t, err)
	return u
}

// addFaculty seeds an account plus a profile in the given lifecycle state.
func (e *testEnv) addFaculty(t *testing.T, email, password string, status data.FacultyStatus) (*data.User, *data.FacultyProfile) {
	t.Helper()
	u := e.addUser(t, email, password, data.RoleFaculty)
	p, err := e.faculty.CreateProfile(context.Background(), u.ID, "Prof "+email, "", "", "", "")
	require.NoError(t, err)
	p.Status = status
	return u, p
}

func (e *testEnv) tokenFor(t *testing.T, u *data.User) string {
	t.Helper()
	token, _, err := e.srv.auth.GenerateToken(u.ID, u.Email, string(u.Role))
	require.NoError(t, err)
	return token
}

// do runs a request through the full router, including auth middleware.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
