package email

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Attachment is a file sent along with a message, held in memory.
type Attachment struct {
	Filename string
	Content  []byte
}

// Mailer sends transactional mail over SMTP. When Host is empty (local
// development, tests) it logs the message instead of sending, so every
// flow that mails a customer still works without credentials.
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Logger   *zap.Logger
}

// NewMailer wires a Mailer from config values.
func NewMailer(host string, port int, username, password, from string, logger *zap.Logger) *Mailer {
	return &Mailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		Logger:   logger,
	}
}

// Enabled reports whether real SMTP delivery is configured.
func (m *Mailer) Enabled() bool {
	return m.Host != ""
}

// Send delivers one plain-text message, with optional attachments.
func (m *Mailer) Send(to, subject, body string, attachments ...Attachment) error {
	if !m.Enabled() {
		m.Logger.Info("email delivery skipped (SMTP not configured)",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Int("attachments", len(attachments)),
			zap.String("body", body),
		)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	for _, att := range attachments {
		content := att.Content
		msg.Attach(att.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	dialer := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

// SendPasswordResetCode mails the 6-digit reset code.
func (m *Mailer) SendPasswordResetCode(to, code string) error {
	subject := "Your PCBulacan password reset code"
	body := fmt.Sprintf(
		"Hi,\n\nYour password reset code is: %s\n\nThis code expires in 10 minutes. If you did not request a reset, you can ignore this email.\n\nPCBulacan",
		code,
	)
	return m.Send(to, subject, body)
}

// SendOrderShipped mails the shipment notice with the PDF receipt attached.
func (m *Mailer) SendOrderShipped(to, fullName, orderNumber string, receipt []byte) error {
	subject := fmt.Sprintf("Your PCBulacan order %s has shipped!", orderNumber)
	body := fmt.Sprintf(
		"Hi %s,\n\nGood news! Your order %s is on its way. Your receipt is attached.\n\nThank you for shopping with PCBulacan!",
		fullName, orderNumber,
	)
	att := Attachment{Filename: fmt.Sprintf("receipt-%s.pdf", orderNumber), Content: receipt}
	return m.Send(to, subject, body, att)
}
