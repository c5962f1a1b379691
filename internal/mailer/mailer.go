// Package mailer delivers single-recipient messages over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/julianstephens/workform/internal/logger"
)

// Message is one email to one recipient.
type Message struct {
	To      string
	Subject string
	Body    string
	HTML    bool
}

// Sender delivers a Message.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// Config holds SMTP transport settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// SSL selects implicit TLS; otherwise STARTTLS is used when offered.
	SSL     bool
	From    string
	Timeout time.Duration
}

// SMTPSender sends each message over a fresh SMTP connection.
type SMTPSender struct {
	cfg Config
}

func NewSMTP(cfg Config) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("sender address is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SMTPSender{cfg: cfg}, nil
}

func (s *SMTPSender) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTimeout(s.cfg.Timeout),
	}
	if s.cfg.SSL {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSOpportunistic))
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	return mail.NewClient(s.cfg.Host, opts...)
}

func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("invalid sender %q: %w", s.cfg.From, err)
	}
	if err := msg.To(m.To); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", m.To, err)
	}
	msg.Subject(m.Subject)
	msg.SetDate()
	msg.SetMessageID()
	if m.HTML {
		msg.SetBodyString(mail.TypeTextHTML, m.Body)
	} else {
		msg.SetBodyString(mail.TypeTextPlain, m.Body)
	}

	c, err := s.client()
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", m.To, err)
	}

	logger.Debug("mail sent", "to", m.To, "subject", m.Subject)
	return nil
}

// LogSender writes messages to the log instead of sending them. It backs
// explicit dry runs only.
type LogSender struct{}

func (LogSender) Send(_ context.Context, m Message) error {
	logger.Info("mail (not sent)", "to", m.To, "subject", m.Subject, "bytes", len(m.Body))
	return nil
}

// ErrNotConfigured is returned for every message when no SMTP host is set.
var ErrNotConfigured = errors.New("smtp host is not configured")

// Unconfigured stands in for the SMTP sender when no host is set, so each
// delivery is recorded as failed instead of silently dropped.
type Unconfigured struct{}

func (Unconfigured) Send(_ context.Context, m Message) error {
	logger.Warn("mail not sent", "to", m.To, "error", ErrNotConfigured)
	return ErrNotConfigured
}

// Recorder keeps every message it is given. Fail, when set, decides per
// message whether Send returns an error instead.
type Recorder struct {
	mu   sync.Mutex
	Sent []Message
	Fail func(Message) error
}

func (r *Recorder) Send(_ context.Context, m Message) error {
	if r.Fail != nil {
		if err := r.Fail(m); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sent = append(r.Sent, m)
	return nil
}

// To returns the messages addressed to addr, case-insensitively.
func (r *Recorder) To(addr string) []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Message
	for _, m := range r.Sent {
		if strings.EqualFold(m.To, addr) {
			out = append(out, m)
		}
	}
	return out
}
