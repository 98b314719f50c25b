// Package contact validates contact form submissions and delivers them by mail.
package contact

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/internal/domain/mailModel"
)

// Submission is the raw form. Website is a honeypot field that humans never fill in.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Website string `json:"website,omitempty"`
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func (s Submission) IsSpam() bool {
	return strings.TrimSpace(s.Website) != ""
}

func (s Submission) Validate() error {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if utf8.RuneCountInString(name) > config.ContactNameMax {
		return &ValidationError{Field: "name", Reason: "is too long"}
	}
	if !plausibleEmail(strings.TrimSpace(s.Email)) {
		return &ValidationError{Field: "email", Reason: "is not a valid address"}
	}
	n := utf8.RuneCountInString(strings.TrimSpace(s.Message))
	if n < config.ContactMessageMin {
		return &ValidationError{Field: "message", Reason: "is too short"}
	}
	if n > config.ContactMessageMax {
		return &ValidationError{Field: "message", Reason: "is too long"}
	}
	return nil
}

// ToMessage trims the fields into a queued message.
func (s Submission) ToMessage(id, traceId string, now time.Time) mailModel.ContactMessage {
	return mailModel.ContactMessage{
		Id:         id,
		TraceId:    traceId,
		Name:       strings.TrimSpace(s.Name),
		Email:      strings.TrimSpace(s.Email),
		Message:    strings.TrimSpace(s.Message),
		ReceivedAt: now,
	}
}

func plausibleEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, "\r\n") {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}
