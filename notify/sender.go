// Package notify renders and delivers the campaign's outbound notifications:
// donor receipts, internal team alerts, and contact-form relays. Everything
// downstream of a confirmed payment is best-effort; failures are logged and
// never surfaced to the payment flow.
package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"
)

type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// EmailSender delivers HTML email, optionally with a single attachment.
type EmailSender interface {
	SendEmail(ctx context.Context, to []string, subject, htmlBody string) (SendResult, error)
	SendEmailWithAttachment(ctx context.Context, to []string, subject, htmlBody, filename string, attachment []byte) (SendResult, error)
}

// SMTPSender sends mail over authenticated SMTP.
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	fromName string
}

func NewSMTPSender(host, port, username, password, fromName string) (*SMTPSender, error) {
	if host == "" {
		return nil, fmt.Errorf("SMTP_HOST not set")
	}
	if port == "" {
		port = "587"
	}
	if username == "" {
		return nil, fmt.Errorf("SMTP_USER not set")
	}
	if password == "" {
		return nil, fmt.Errorf("SMTP_PASS not set")
	}
	if fromName == "" {
		fromName = "Campaign Team"
	}
	return &SMTPSender{host, port, username, password, fromName}, nil
}

func (s *SMTPSender) from() string {
	return fmt.Sprintf("%s <%s>", s.fromName, s.username)
}

func (s *SMTPSender) SendEmail(ctx context.Context, to []string, subject, htmlBody string) (SendResult, error) {
	msg := []byte(
		"From: " + s.from() + "\r\n" +
			"To: " + strings.Join(to, ", ") + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			htmlBody,
	)
	return s.deliver(to, msg)
}

func (s *SMTPSender) SendEmailWithAttachment(ctx context.Context, to []string, subject, htmlBody, filename string, attachment []byte) (SendResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	headers := "From: " + s.from() + "\r\n" +
		"To: " + strings.Join(to, ", ") + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: multipart/mixed; boundary=" + mw.Boundary() + "\r\n" +
		"\r\n"

	htmlPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=UTF-8"},
	})
	if err != nil {
		return SendResult{}, fmt.Errorf("build mail body: %w", err)
	}
	if _, err := htmlPart.Write([]byte(htmlBody)); err != nil {
		return SendResult{}, fmt.Errorf("build mail body: %w", err)
	}

	attPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"application/pdf"},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", filename)},
	})
	if err != nil {
		return SendResult{}, fmt.Errorf("build mail attachment: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(attachment)
	for len(encoded) > 0 {
		n := 76
		if len(encoded) < n {
			n = len(encoded)
		}
		if _, err := attPart.Write([]byte(encoded[:n] + "\r\n")); err != nil {
			return SendResult{}, fmt.Errorf("build mail attachment: %w", err)
		}
		encoded = encoded[n:]
	}
	if err := mw.Close(); err != nil {
		return SendResult{}, fmt.Errorf("build mail body: %w", err)
	}

	return s.deliver(to, append([]byte(headers), body.Bytes()...))
}

func (s *SMTPSender) deliver(to []string, msg []byte) (SendResult, error) {
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := smtp.SendMail(addr, auth, s.username, to, msg); err != nil {
		return SendResult{}, fmt.Errorf("smtp send failed: %w", err)
	}
	return SendResult{
		MessageID: fmt.Sprintf("smtp-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}
