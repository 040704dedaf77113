package events

import "time"

// EventType identifies a domain event.
type EventType string

const (
	EventUserRegistered    EventType = "user.registered"
	EventLicitationCreated EventType = "licitation.created"
	EventLicitationUpdated EventType = "licitation.updated"
	EventLicitationDeleted EventType = "licitation.deleted"
)

// Event is the envelope carried through the dispatcher.
type Event struct {
	ID        string
	Type      EventType
	SubjectID string
	ActorID   string
	Timestamp time.Time
	Payload   any
}

// UserRegisteredPayload describes a new account.
type UserRegisteredPayload struct {
	Username string
	Email    string
	IsAdmin  bool
}

// LicitationCreatedPayload describes a new licitation.
type LicitationCreatedPayload struct {
	Title         string
	StartDate     time.Time
	EndDate       time.Time
	IsLowestPrice bool
}

// LicitationUpdatedPayload describes a licitation mutation.
type LicitationUpdatedPayload struct {
	Title     string
	StartDate time.Time
	EndDate   time.Time
}

// LicitationDeletedPayload describes a removal.
type LicitationDeletedPayload struct {
	Title string
}
