package mail

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzafir/hawk-ai-agent/internal/config"
	"github.com/mzafir/hawk-ai-agent/internal/thread"
)

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.MailConfig
		wantErr bool
	}{
		{
			name:    "valid",
			cfg:     config.MailConfig{Host: "imap.example.com", Port: 993},
			wantErr: false,
		},
		{
			name:    "missing host",
			cfg:     config.MailConfig{Port: 993},
			wantErr: true,
		},
		{
			name:    "bad port",
			cfg:     config.MailConfig{Host: "imap.example.com", Port: 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg, nil)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMessageFromEnvelope(t *testing.T) {
	env := &imap.Envelope{
		Subject: "Re: Budget Approval Needed",
		Date:    time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC),
		From: []imap.Address{
			{Mailbox: "jane", Host: "tusd.edu"},
		},
	}

	msg := messageFromEnvelope(env, "please confirm the numbers")

	assert.Equal(t, "Re: Budget Approval Needed", msg.Subject)
	assert.Equal(t, "jane@tusd.edu", msg.Sender)
	assert.Equal(t, "please confirm the numbers", msg.Body)

	// The rendered date round-trips through the core's parser.
	parsed, ok := msg.ParseDate()
	require.True(t, ok)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.June, parsed.Month())
}

func TestMessageFromEnvelope_Truncation(t *testing.T) {
	env := &imap.Envelope{Subject: "Long one"}

	msg := messageFromEnvelope(env, strings.Repeat("x", 2000))

	assert.Len(t, msg.Body, maxBodyBytes)
}

func TestMessageFromEnvelope_MissingFields(t *testing.T) {
	msg := messageFromEnvelope(&imap.Envelope{Subject: "No sender"}, "")

	assert.Empty(t, msg.Sender)
	assert.Empty(t, msg.Date)
	_, ok := msg.ParseDate()
	assert.False(t, ok)
}

func TestExtractTextBody_SinglePart(t *testing.T) {
	raw := "Content-Type: text/plain\r\n" +
		"\r\n" +
		"Hello, can you confirm?\r\n"

	body := extractTextBody([]byte(raw))

	assert.Contains(t, body, "can you confirm?")
}

func TestExtractTextBody_Multipart(t *testing.T) {
	raw := "Content-Type: multipart/alternative; boundary=BOUNDARY\r\n" +
		"\r\n" +
		"--BOUNDARY\r\n" +
		"Content-Type: text/html\r\n" +
		"\r\n" +
		"<p>ignored</p>\r\n" +
		"--BOUNDARY\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"the plain part\r\n" +
		"--BOUNDARY--\r\n"

	body := extractTextBody([]byte(raw))

	assert.Contains(t, body, "the plain part")
	assert.NotContains(t, body, "ignored")
}

func TestExtractTextBody_Garbage(t *testing.T) {
	assert.Empty(t, extractTextBody(nil))
}

func TestStaticSource_Search(t *testing.T) {
	src := &StaticSource{Messages: []thread.Message{
		{Subject: "TUSD kickoff", Body: "agenda", Date: "Mon, 10 Jun 2024 09:00:00"},
		{Subject: "Lunch", Body: "pizza friday", Date: "Tue, 11 Jun 2024 09:00:00"},
		{Subject: "Re: TUSD kickoff", Body: "please confirm", Date: "Wed, 12 Jun 2024 09:00:00"},
	}}

	got, err := src.Search(context.Background(), Filter{Terms: []string{"tusd"}})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "TUSD kickoff", got[0].Subject)
}

func TestStaticSource_EmptyTermsMatchAll(t *testing.T) {
	src := &StaticSource{Messages: []thread.Message{
		{Subject: "a"}, {Subject: "b"},
	}}

	got, err := src.Search(context.Background(), Filter{})

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestStaticSource_SinceAndLimit(t *testing.T) {
	src := &StaticSource{Messages: []thread.Message{
		{Subject: "old", Date: "Mon, 01 Jan 2024 09:00:00"},
		{Subject: "new one", Date: "Mon, 10 Jun 2024 09:00:00"},
		{Subject: "new two", Date: "Tue, 11 Jun 2024 09:00:00"},
	}}

	got, err := src.Search(context.Background(), Filter{
		Since: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Limit: 1,
	})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new one", got[0].Subject)
}
