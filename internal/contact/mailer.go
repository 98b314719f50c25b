package contact

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/internal/domain/mailModel"
	"github.com/akolanti/portfolio/pkg/logger_i"
)

// NewMailer picks SMTP delivery when it is configured and falls back to logging the message.
func NewMailer(cfg *config.Config) mailModel.Mailer {
	if cfg.HasSMTP() {
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.ContactFrom, cfg.ContactTo)
	}
	return NewLogMailer()
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type SMTPMailer struct {
	addr     string
	host     string
	username string
	password string
	from     string
	to       string
	send     sendFunc
}

func NewSMTPMailer(host string, port int, username, password, from, to string) *SMTPMailer {
	if from == "" {
		from = username
	}
	return &SMTPMailer{
		addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		host:     host,
		username: username,
		password: password,
		from:     from,
		to:       to,
		send:     smtp.SendMail,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg mailModel.ContactMessage) error {
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	done := make(chan error, 1)
	go func() {
		done <- m.send(m.addr, auth, m.from, []string{m.to}, m.compose(msg))
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *SMTPMailer) compose(msg mailModel.ContactMessage) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", m.to)
	fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.Email)
	fmt.Fprintf(&b, "Subject: Portfolio contact from %s\r\n", sanitizeHeader(msg.Name))
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n")
	fmt.Fprintf(&b, "Name: %s\r\nEmail: %s\r\nReceived: %s\r\n\r\n%s\r\n",
		msg.Name, msg.Email, msg.ReceivedAt.UTC().Format("2006-01-02 15:04:05 MST"), msg.Message)
	return []byte(b.String())
}

func sanitizeHeader(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

// LogMailer records submissions in the log when no SMTP server is configured.
type LogMailer struct {
	logger *logger_i.Logger
}

func NewLogMailer() *LogMailer {
	return &LogMailer{logger: logger_i.NewLogger("contact_mailer")}
}

func (m *LogMailer) Send(ctx context.Context, msg mailModel.ContactMessage) error {
	m.logger.FromContext(ctx).Info("Contact message received",
		"messageId", msg.Id, "name", msg.Name, "email", msg.Email, "length", len(msg.Message))
	return nil
}
