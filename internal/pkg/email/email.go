package email

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"html/template"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"github.com/cmlabs-hris/payslip-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// ErrNotConfigured is returned when no SMTP host is set and nothing was sent.
var ErrNotConfigured = errors.New("smtp not configured")

// Attachment is a file sent along with a message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// EmailService defines the interface for sending emails
type EmailService interface {
	// HasTemplate reports whether name is a registered message template.
	HasTemplate(name string) bool
	// SendTemplate renders template name with data and sends it to to.
	SendTemplate(ctx context.Context, name, to string, data any, attachments ...Attachment) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	send      sendFunc
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
		send:      smtp.SendMail,
	}, nil
}

func (s *emailServiceImpl) HasTemplate(name string) bool {
	return s.templates.Lookup(name+".html") != nil && s.templates.Lookup(name+".subject") != nil
}

// SendTemplate renders "<name>.subject" and "<name>.html" and sends the result.
// Delivery is attempted once; the SMTP error is returned as is.
func (s *emailServiceImpl) SendTemplate(ctx context.Context, name, to string, data any, attachments ...Attachment) error {
	if !s.HasTemplate(name) {
		return fmt.Errorf("email template %q not found", name)
	}

	var subject bytes.Buffer
	if err := s.templates.ExecuteTemplate(&subject, name+".subject", data); err != nil {
		return fmt.Errorf("failed to execute subject template: %w", err)
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, name+".html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return s.sendHTML(to, html.UnescapeString(strings.TrimSpace(subject.String())), body.String(), attachments)
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string, attachments []Attachment) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return ErrNotConfigured
	}

	message, err := buildMessage(s.cfg.FromName, s.cfg.From, to, subject, htmlBody, attachments)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	if err := s.send(addr, auth, s.cfg.From, []string{to}, message); err != nil {
		slog.Error("Failed to send email", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("Email sent successfully", "to", to, "subject", subject, "attachments", len(attachments))
	return nil
}

func buildMessage(fromName, from, to, subject, htmlBody string, attachments []Attachment) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", fromName), from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", mw.Boundary())
	buf.WriteString("\r\n")

	bodyPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {`text/html; charset="UTF-8"`},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create body part: %w", err)
	}
	if _, err := bodyPart.Write([]byte(htmlBody)); err != nil {
		return nil, fmt.Errorf("failed to write body part: %w", err)
	}

	for _, a := range attachments {
		contentType := a.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {fmt.Sprintf("%s; name=%q", contentType, a.Filename)},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", a.Filename)},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create attachment part: %w", err)
		}
		if err := writeBase64Lines(part, a.Data); err != nil {
			return nil, fmt.Errorf("failed to write attachment %s: %w", a.Filename, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeBase64Lines writes data base64 encoded in 76 character lines.
func writeBase64Lines(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 76 {
		if _, err := w.Write([]byte(encoded[:76] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[76:]
	}
	_, err := w.Write([]byte(encoded + "\r\n"))
	return err
}
