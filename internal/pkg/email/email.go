package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// ContactMessage is the part of a contact submission that goes into mail.
type ContactMessage struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Company    string
	Subject    string
	Message    string
	Service    string
	Budget     string
	Timeline   string
	ReceivedAt time.Time
}

// EmailService sends the contact form mails.
type EmailService interface {
	// SendContactNotification tells the sales inbox about a new submission.
	SendContactNotification(msg ContactMessage) error
	// SendContactAcknowledgement confirms receipt to the person who wrote in.
	SendContactAcknowledgement(msg ContactMessage) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	send      func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	backoff   time.Duration
}

func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		send:      smtp.SendMail,
		backoff:   time.Second,
	}, nil
}

type notificationEmailData struct {
	ContactMessage
	ReceivedAt string
}

// SendContactNotification implements EmailService.
func (s *emailServiceImpl) SendContactNotification(msg ContactMessage) error {
	if s.cfg.NotifyTo == "" {
		return nil
	}

	data := notificationEmailData{
		ContactMessage: msg,
		ReceivedAt:     msg.ReceivedAt.Format("02 Jan 2006 15:04 MST"),
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "contact_notification.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(s.cfg.NotifyTo, fmt.Sprintf("New contact request: %s", msg.Subject), body.String())
}

type acknowledgementEmailData struct {
	Name       string
	Subject    string
	SenderName string
}

// SendContactAcknowledgement implements EmailService.
func (s *emailServiceImpl) SendContactAcknowledgement(msg ContactMessage) error {
	data := acknowledgementEmailData{
		Name:       msg.Name,
		Subject:    msg.Subject,
		SenderName: s.cfg.FromName,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "contact_acknowledgement.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(msg.Email, "We received your message", body.String())
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

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.send(addr, auth, from, []string{to}, message)
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

		// 1s, 2s, 4s
		if attempt < maxRetries {
			time.Sleep(s.backoff << (attempt - 1))
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
