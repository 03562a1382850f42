package domain

import "time"

// Activity names what an attendee did in the portal.
type Activity string

const (
	ActivityPortal   Activity = "portal"
	ActivityVideos   Activity = "videos"
	ActivityPDF      Activity = "pdf"
	ActivityFeedback Activity = "feedback"
)

// LoginLog is one entry of the admin login/activity log.
type LoginLog struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	LoginTime time.Time `json:"loginTime"`
	Device    string    `json:"device"`
	IP        string    `json:"ip"`
	Activity  Activity  `json:"activity"`
}
