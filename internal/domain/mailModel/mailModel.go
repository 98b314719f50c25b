package mailModel

import (
	"context"
	"time"
)

// ContactMessage is a validated contact form submission waiting for delivery.
type ContactMessage struct {
	Id         string    `json:"id"`
	TraceId    string    `json:"trace_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"received_at"`
}

type Mailer interface {
	Send(ctx context.Context, msg ContactMessage) error
}
