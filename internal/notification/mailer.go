package notification

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// Mailer delivers one event as an email.
type Mailer interface {
	Send(ctx context.Context, ev Event) error
}

type SMTPConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	FrontendURL string
}

func (c SMTPConfig) configured() bool {
	return c.User != "" && c.Password != ""
}

// SMTPMailer sends HTML mail over STARTTLS. When credentials are missing it
// reports itself disabled and every Send is a logged no-op, so the rest of
// the pipeline keeps working in development.
type SMTPMailer struct {
	cfg     SMTPConfig
	timeout time.Duration
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if !cfg.configured() {
		log.Println("mailer: EMAIL_USER/EMAIL_PASSWORD not set, email delivery disabled")
	}
	return &SMTPMailer{
		cfg:     cfg,
		timeout: 10 * time.Second,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, ev Event) error {
	if !m.cfg.configured() {
		log.Printf("mailer: skipping %s to user %d (not configured)", ev.Kind, ev.RecipientID)
		return nil
	}

	subject, body := renderEmail(ev, m.cfg.FrontendURL)
	msg := buildMessage(m.cfg.User, ev.RecipientEmail, subject, body)

	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)

	dialer := &net.Dialer{Timeout: m.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial smtp %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(m.cfg.User); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(ev.RecipientEmail); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}

	return client.Quit()
}

func buildMessage(from, to, subject, htmlBody string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: \"Filmes & Séries\" <%s>\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return b.String()
}
