package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMessage(t *testing.T) {
	mail := NewMailService(MailConfig{Host: "smtp.acme.com", Port: 587, User: "itam@acme.com", Pass: "secret"})
	require.NotNil(t, mail)

	msg := mail.statusMessage("dev@acme.com", "Laptop", "approved")
	assert.Equal(t, []string{"itam@acme.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"dev@acme.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Your request for Laptop was approved"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `Your request for "Laptop" has been approved`)
}

func TestMailServiceNeedsCompleteConfig(t *testing.T) {
	assert.Nil(t, NewMailService(MailConfig{Host: "smtp.acme.com", User: "itam@acme.com"}))

	var mail *MailService
	assert.NotPanics(t, func() { mail.NotifyStatusChange("dev@acme.com", "Laptop", "rejected") })
}
