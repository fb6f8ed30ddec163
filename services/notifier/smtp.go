package notifier

import (
	"fmt"
	"net/smtp"
	"strings"

	"watchtracker/pkg/errors"
)

// SMTPNotifier delivers alerts by email. Authentication is configured
// out-of-band via environment variables.
type SMTPNotifier struct {
	addr     string // host:port
	username string
	password string
	from     string
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPNotifier creates a new SMTP mail notifier
func NewSMTPNotifier(addr, username, password, from string) *SMTPNotifier {
	return &SMTPNotifier{
		addr:     addr,
		username: username,
		password: password,
		from:     from,
		sendMail: smtp.SendMail,
	}
}

// Notify sends the alert as a plain-text email to the recipient
func (n *SMTPNotifier) Notify(subject, body, recipient string) error {
	if recipient == "" {
		return errors.NewNotification("no alert recipient configured", nil)
	}

	host := n.addr
	if i := strings.Index(host, ":"); i >= 0 {
		host = host[:i]
	}
	auth := smtp.PlainAuth("", n.username, n.password, host)

	msg := buildMessage(n.from, recipient, subject, body)

	if err := n.sendMail(n.addr, auth, n.from, []string{recipient}, msg); err != nil {
		return errors.NewNotification("failed to send alert email", err)
	}
	return nil
}

// Close is a no-op; SMTP connections are per send
func (n *SMTPNotifier) Close() error {
	return nil
}

// buildMessage assembles an RFC 5322 plain-text message
func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
