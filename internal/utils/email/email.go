package email

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/property-service/internal/config"
	"github.com/Dan9191/property-service/internal/report"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	s := &Sender{
		cfg:    cfg,
		logger: logger,
	}
	s.send = s.smtpSend
	return s
}

func (s *Sender) smtpSend(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	return e.Send(addr, auth)
}

// SendReport mails a rendered investment report as an attachment
func (s *Sender) SendReport(to string, in report.Input, doc *report.Document) error {
	if s.cfg.SMTPHost == "" {
		return fmt.Errorf("email delivery is not configured")
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Investment Analysis: %s", in.Record.Address)

	// Format email body
	var body strings.Builder
	fmt.Fprintf(&body, "Investment analysis for %s\n\n", in.Record.Address)
	fmt.Fprintf(&body, "Overall score: %d/100\n", in.Analysis.Score)
	fmt.Fprintf(&body, "Recommendation: %s\n\n", in.Analysis.Recommendation())
	fmt.Fprintf(&body, "The full report is attached (%s).\n", doc.Filename)
	body.WriteString("\nThis report is for informational purposes only and does not constitute financial advice.\n")
	e.Text = []byte(body.String())

	if _, err := e.Attach(bytes.NewReader(doc.Data), doc.Filename, doc.ContentType); err != nil {
		return fmt.Errorf("failed to attach report: %w", err)
	}

	// Send email
	if err := s.send(e); err != nil {
		s.logger.Errorf("Failed to send report to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
