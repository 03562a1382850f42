package dto

import (
	"time"

	"github.com/spec-kit/eventhub/internal/domain"
)

// FeedbackRequest payload for the portal feedback form. Name and email may be
// left out; the session supplies them.
type FeedbackRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Rating         int    `json:"rating"`
	Category       string `json:"category"`
	Message        string `json:"message"`
	Recommendation string `json:"recommendation"`
}

// Input converts the payload for the repository.
func (r FeedbackRequest) Input() domain.FeedbackInput {
	return domain.FeedbackInput{
		Name:           r.Name,
		Email:          r.Email,
		Rating:         r.Rating,
		Category:       domain.FeedbackCategory(r.Category),
		Message:        r.Message,
		Recommendation: domain.Recommendation(r.Recommendation),
	}
}

// ProfileResponse is the attendee card.
type ProfileResponse struct {
	Registered  bool              `json:"registered"`
	Name        string            `json:"name,omitempty"`
	Email       string            `json:"email"`
	TicketType  domain.TicketType `json:"ticketType"`
	TicketLabel string            `json:"ticketLabel"`
	CreatedAt   *time.Time        `json:"createdAt"`
	LastLogin   *time.Time        `json:"lastLogin"`
}

// PortalResponse renders the portal overview.
type PortalResponse struct {
	Event    domain.EventDetails  `json:"event"`
	Profile  ProfileResponse      `json:"profile"`
	Feedback domain.FeedbackStats `json:"feedback"`
	Tiles    []domain.Tile        `json:"tiles"`
}
