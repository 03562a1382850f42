package repository

import (
	"strings"
	"time"
)

// Keys of the record lists inside the application namespace.
const (
	KeyRegistrations = "registrations"
	KeyFeedbacks     = "eventFeedbacks"
	KeyLoginLogs     = "loginLogs"
)

// EmailMatcher decides whether a stored email equals a looked-up one.
type EmailMatcher func(stored, wanted string) bool

// ExactEmail compares byte for byte. It is the default policy.
func ExactEmail(stored, wanted string) bool {
	return stored == wanted
}

// FoldedEmail ignores case and surrounding whitespace.
func FoldedEmail(stored, wanted string) bool {
	return strings.EqualFold(strings.TrimSpace(stored), strings.TrimSpace(wanted))
}

// MatcherFor maps the AUTH_EMAIL_MATCH setting to a matcher.
func MatcherFor(mode string) EmailMatcher {
	if mode == "fold" {
		return FoldedEmail
	}
	return ExactEmail
}

type options struct {
	match EmailMatcher
	now   func() time.Time
}

// Option customizes a repository.
type Option func(*options)

// WithEmailMatcher replaces the exact email comparison.
func WithEmailMatcher(m EmailMatcher) Option {
	return func(o *options) {
		if m != nil {
			o.match = m
		}
	}
}

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		match: ExactEmail,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
