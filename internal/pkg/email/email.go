package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService is the notification sink for the edit-request workflow.
// Sends are best-effort: callers dispatch after the record mutation has
// committed and treat a returned error as log-and-forget.
type EmailService interface {
	SendEditRequested(to, memberName, field, reason string) error
	SendEditResolved(to, memberName, outcome, detail string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type editRequestedEmailData struct {
	MemberName string
	Field      string
	Reason     string
}

// SendEditRequested tells an admin that a time-edit request awaits review.
func (s *emailServiceImpl) SendEditRequested(to, memberName, field, reason string) error {
	data := editRequestedEmailData{
		MemberName: memberName,
		Field:      field,
		Reason:     reason,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "edit_requested.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Time edit request from %s", memberName), body.String())
}

type editResolvedEmailData struct {
	MemberName string
	Outcome    string
	Detail     string
}

// SendEditResolved tells a member their edit request was approved or
// rejected.
func (s *emailServiceImpl) SendEditResolved(to, memberName, outcome, detail string) error {
	data := editResolvedEmailData{
		MemberName: memberName,
		Outcome:    outcome,
		Detail:     detail,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "edit_resolved.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Your time edit request was %s", outcome), body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
