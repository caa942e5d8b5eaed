// Package mailer delivers verdict notifications over SMTP.
package mailer

import (
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"time"
)

// Config holds the outbound mail settings loaded at startup.
type Config struct {
	Host         string
	Port         int
	User         string
	Password     string
	Subject      string
	BodyTemplate string
	Timeout      time.Duration
}

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends verdict notifications. The transport function is
// injectable so tests capture messages instead of dialing out.
type Mailer struct {
	cfg    Config
	sendFn func(Message) error
}

func New(cfg Config) *Mailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	m := &Mailer{cfg: cfg}
	m.sendFn = m.smtpSend
	return m
}

// SendVerdict substitutes details into the configured body template and
// delivers the notification to the given address.
func (m *Mailer) SendVerdict(to, details string) error {
	return m.sendFn(Message{
		To:      to,
		Subject: m.cfg.Subject,
		Body:    RenderBody(m.cfg.BodyTemplate, details),
	})
}

func (m *Mailer) formatMessage(msg Message) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		m.cfg.User, msg.To, msg.Subject, msg.Body,
	)
}

// smtpSend delivers via STARTTLS under a bounded deadline so a stuck mail
// server cannot pin a request worker.
func (m *Mailer) smtpSend(msg Message) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	conn, err := net.DialTimeout("tcp", addr, m.cfg.Timeout)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	_ = conn.SetDeadline(time.Now().Add(m.cfg.Timeout))

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	if err := c.Auth(smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := c.Mail(m.cfg.User); err != nil {
		return fmt.Errorf("smtp mail: %w", err)
	}
	if err := c.Rcpt(msg.To); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := io.WriteString(w, m.formatMessage(msg)); err != nil {
		w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}

	return c.Quit()
}
