package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPRequiresHostAndSender(t *testing.T) {
	_, err := NewSMTP(Config{From: "a@example.com"})
	assert.Error(t, err)

	_, err = NewSMTP(Config{Host: "smtp.example.com"})
	assert.Error(t, err)

	s, err := NewSMTP(Config{Host: "smtp.example.com", Port: 587, From: "a@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, s.cfg.Timeout)
}

func TestSMTPClientOptions(t *testing.T) {
	s, err := NewSMTP(Config{Host: "smtp.example.com", Port: 465, SSL: true, Username: "u", Password: "p", From: "a@example.com"})
	require.NoError(t, err)

	c, err := s.client()
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestSMTPSendRejectsBadRecipient(t *testing.T) {
	s, err := NewSMTP(Config{Host: "smtp.example.com", Port: 587, From: "a@example.com"})
	require.NoError(t, err)

	err = s.Send(context.Background(), Message{To: "not an address", Subject: "x", Body: "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid recipient")
}

func TestRecorder(t *testing.T) {
	r := &Recorder{Fail: func(m Message) error {
		if m.To == "bounce@example.com" {
			return errors.New("mailbox unavailable")
		}
		return nil
	}}

	require.NoError(t, r.Send(context.Background(), Message{To: "Asha@Example.com", Subject: "hi"}))
	assert.Error(t, r.Send(context.Background(), Message{To: "bounce@example.com"}))

	assert.Len(t, r.Sent, 1)
	assert.Len(t, r.To("asha@example.com"), 1)
	assert.Empty(t, r.To("bounce@example.com"))
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, LogSender{}.Send(context.Background(), Message{To: "a@example.com"}))
}

func TestUnconfiguredFailsEverySend(t *testing.T) {
	err := Unconfigured{}.Send(context.Background(), Message{To: "a@example.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.EqualError(t, err, "smtp host is not configured")
}
