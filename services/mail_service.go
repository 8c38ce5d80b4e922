package services

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// MailConfig holds the SMTP settings
type MailConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// MailService sends requester notifications over SMTP
type MailService struct {
	cfg    MailConfig
	dialer *gomail.Dialer
}

// NewMailService returns nil when SMTP is not configured
func NewMailService(cfg MailConfig) *MailService {
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	if cfg.Host == "" || cfg.User == "" || cfg.Pass == "" || cfg.From == "" {
		zap.S().Info("SMTP configuration is incomplete, mail notifications disabled")
		return nil
	}
	return &MailService{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
	}
}

func (m *MailService) statusMessage(to, itemName, status string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Your request for %s was %s", itemName, status))
	msg.SetBody("text/plain", fmt.Sprintf("Hello,\n\nYour request for %q has been %s by your company admin.\n\nITAM", itemName, status))
	return msg
}

// NotifyStatusChange sends the mail in the background; failures are only logged
func (m *MailService) NotifyStatusChange(to, itemName, status string) {
	if m == nil {
		return
	}
	msg := m.statusMessage(to, itemName, status)
	go func() {
		if err := m.dialer.DialAndSend(msg); err != nil {
			zap.S().Warnw("Failed to send notification email", "to", to, "error", err)
			return
		}
		zap.S().Debugw("notification email sent", "to", to, "status", status)
	}()
}
