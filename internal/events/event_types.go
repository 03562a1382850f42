package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/eventhub/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRegistrationCreated       EventType = "registration_created"
	EventRegistrationStatusChanged EventType = "registration_status_changed"
	EventOTPRequested              EventType = "otp_requested"
	EventUserLoggedIn              EventType = "user_logged_in"
	EventUserLoggedOut             EventType = "user_logged_out"
	EventAdminLoggedIn             EventType = "admin_logged_in"
	EventTileOpened                EventType = "tile_opened"
	EventFeedbackSubmitted         EventType = "feedback_submitted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role  domain.Role `json:"role"`
	Email string      `json:"email,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with an ID and the current time.
func New(eventType EventType, actor Actor, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// RegistrationCreatedPayload payload.
type RegistrationCreatedPayload struct {
	RegistrationID int64             `json:"registration_id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	TicketType     domain.TicketType `json:"ticket_type"`
}

// RegistrationStatusChangedPayload payload.
type RegistrationStatusChangedPayload struct {
	RegistrationID int64                     `json:"registration_id"`
	OldStatus      domain.RegistrationStatus `json:"old_status"`
	NewStatus      domain.RegistrationStatus `json:"new_status"`
}

// OTPRequestedPayload payload. Code is the demo code the stub "sends".
type OTPRequestedPayload struct {
	Email string `json:"email"`
	Code  string `json:"-"`
}

// LoginPayload payload.
type LoginPayload struct {
	Device string `json:"device,omitempty"`
	IP     string `json:"ip,omitempty"`
}

// TileOpenedPayload payload.
type TileOpenedPayload struct {
	Tile domain.TileType `json:"tile"`
}

// FeedbackSubmittedPayload payload.
type FeedbackSubmittedPayload struct {
	Rating         int                     `json:"rating"`
	Category       domain.FeedbackCategory `json:"category"`
	Recommendation domain.Recommendation   `json:"recommendation"`
}
