package domain

import (
	"strings"
	"time"
)

// FeedbackCategory groups feedback by the part of the event it is about.
type FeedbackCategory string

const (
	CategoryGeneral      FeedbackCategory = "general"
	CategoryContent      FeedbackCategory = "content"
	CategorySpeakers     FeedbackCategory = "speakers"
	CategoryVenue        FeedbackCategory = "venue"
	CategoryOrganization FeedbackCategory = "organization"
	CategoryNetworking   FeedbackCategory = "networking"
	CategoryOther        FeedbackCategory = "other"
)

func (c FeedbackCategory) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryContent, CategorySpeakers, CategoryVenue,
		CategoryOrganization, CategoryNetworking, CategoryOther:
		return true
	}
	return false
}

// Recommendation answers "would you recommend this event?".
type Recommendation string

const (
	RecommendDefinitely Recommendation = "definitely"
	RecommendProbably   Recommendation = "probably"
	RecommendMaybe      Recommendation = "maybe"
)

func (r Recommendation) Valid() bool {
	return r == RecommendDefinitely || r == RecommendProbably || r == RecommendMaybe
}

const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is immutable once submitted.
type Feedback struct {
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Rating         int              `json:"rating"`
	Category       FeedbackCategory `json:"category"`
	Message        string           `json:"message"`
	Recommendation Recommendation   `json:"recommendation"`
	Timestamp      time.Time        `json:"timestamp"`
}

// FeedbackInput carries the feedback form fields.
type FeedbackInput struct {
	Name           string
	Email          string
	Rating         int
	Category       FeedbackCategory
	Message        string
	Recommendation Recommendation
}

func (in FeedbackInput) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(in.Email) == "" {
		errs["email"] = "Email is required"
	}
	if in.Rating < MinRating || in.Rating > MaxRating {
		errs["rating"] = "Rating must be between 1 and 5"
	}
	if !in.Category.Valid() {
		errs["category"] = "Please select a category"
	}
	if strings.TrimSpace(in.Message) == "" {
		errs["message"] = "Feedback message is required"
	}
	if !in.Recommendation.Valid() {
		errs["recommendation"] = "Please tell us if you would recommend the event"
	}
	return errs
}

// FeedbackStats aggregates one attendee's submissions.
type FeedbackStats struct {
	Count           int        `json:"count"`
	AverageRating   float64    `json:"averageRating"`
	LastSubmittedAt *time.Time `json:"lastSubmittedAt"`
}
