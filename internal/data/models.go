package data

import (
	"bytes"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role is the account role stored on the users collection.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleFaculty Role = "FACULTY"
)

// FacultyStatus is the approval lifecycle state of a faculty profile.
// Admin accounts carry no lifecycle status and are always treated as ACTIVE.
type FacultyStatus string

const (
	StatusPending  FacultyStatus = "PENDING"
	StatusActive   FacultyStatus = "ACTIVE"
	StatusRejected FacultyStatus = "REJECTED"
	StatusInactive FacultyStatus = "INACTIVE"
)

// User maps to the users collection (id, email, password hash, role, enabled flag).
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password"`
	Role      Role          `bson:"role"`
	Enabled   bool          `bson:"enabled"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

// FacultyProfile maps to the faculty_profiles collection. Exactly one profile
// exists per FACULTY user; it carries the lifecycle status the login gate reads.
type FacultyProfile struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	UserID         bson.ObjectID `bson:"user_id"`
	Name           string        `bson:"name"`
	Phone          string        `bson:"phone"`
	Address        string        `bson:"address"`
	Subjects       string        `bson:"subjects"`
	Specialisation string        `bson:"specialisation"`
	Status         FacultyStatus `bson:"status"`
	CreatedAt      time.Time     `bson:"created_at"`
	UpdatedAt      time.Time     `bson:"updated_at"`
}

// Conversation maps to the conversations collection. The two participants are
// stored in canonical byte order so the pair {A,B} has exactly one document
// regardless of who opened it; a unique compound index enforces that.
type Conversation struct {
	ID              bson.ObjectID `bson:"_id,omitempty"`
	ParticipantLow  bson.ObjectID `bson:"participant_low"`
	ParticipantHigh bson.ObjectID `bson:"participant_high"`
	CreatedAt       time.Time     `bson:"created_at"`
}

// Includes reports whether the given account is one of the two participants.
func (c *Conversation) Includes(id bson.ObjectID) bool {
	return c.ParticipantLow == id || c.ParticipantHigh == id
}

// Other returns the participant that is not the given account. The caller must
// have verified membership with Includes first.
func (c *Conversation) Other(id bson.ObjectID) bson.ObjectID {
	if c.ParticipantLow == id {
		return c.ParticipantHigh
	}
	return c.ParticipantLow
}

// canonicalPair orders two participant ids into the (low, high) form used as
// the conversation uniqueness key.
func canonicalPair(a, b bson.ObjectID) (low, high bson.ObjectID) {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return a, b
	}
	return b, a
}

// Message maps to the messages collection. Only content and the edited flag
// ever change after insert, and only at the sender's request.
type Message struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	ConversationID bson.ObjectID `bson:"conversation_id"`
	SenderID       bson.ObjectID `bson:"sender_id"`
	Content        string        `bson:"content"`
	Edited         bool          `bson:"edited"`
	CreatedAt      time.Time     `bson:"created_at"`
}

// Notification maps to the notifications collection. Visible and mutable only
// by its recipient.
type Notification struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	RecipientID bson.ObjectID `bson:"recipient_id"`
	Category    string        `bson:"category"`
	Type        string        `bson:"type"`
	Message     string        `bson:"message"`
	Context     string        `bson:"context,omitempty"`
	Read        bool          `bson:"read"`
	Muted       bool          `bson:"muted"`
	CreatedAt   time.Time     `bson:"created_at"`
}

// CalendarEvent maps to the calendar_events collection. Creating one triggers
// a broadcast notification to every other account.
type CalendarEvent struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Title       string        `bson:"title"`
	Category    string        `bson:"category"`
	Date        time.Time     `bson:"date"`
	StartTime   string        `bson:"start_time"`
	EndTime     string        `bson:"end_time"`
	MeetingType string        `bson:"meeting_type"` // inhouse | outhouse
	CollegeName string        `bson:"college_name,omitempty"`
	Batch       string        `bson:"batch,omitempty"`
	Comments    string        `bson:"comments,omitempty"`
	UserEvent   bool          `bson:"user_event"`
	CreatedBy   bson.ObjectID `bson:"created_by"`
	CreatedAt   time.Time     `bson:"created_at"`
}
