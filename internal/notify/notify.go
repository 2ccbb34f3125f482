// Package notify sends outbound email. Delivery is strictly best-effort:
// callers dispatch off the request path and failures are logged, never
// returned to an HTTP client.
package notify

import (
	"github.com/sirupsen/logrus" // Logging library
	"gopkg.in/gomail.v2"         // SMTP client
)

// Notifier sends a plain-text message to a single recipient
type Notifier interface {
	Send(to, subject, body string) error
}

// SMTPNotifier delivers mail through an SMTP server with STARTTLS
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTP builds a notifier for the given SMTP server
func NewSMTP(host string, port int, user, pass, from string) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

// Send delivers one message, blocking until the server accepts it
func (n *SMTPNotifier) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return n.dialer.DialAndSend(m)
}

// Dispatch invokes n.Send on a new goroutine and swallows the outcome.
// A nil notifier (mail not configured) is a no-op.
func Dispatch(n Notifier, to, subject, body string) {
	if n == nil || to == "" {
		return
	}
	go func() {
		if err := n.Send(to, subject, body); err != nil {
			// Mail failures never surface to the caller
			logrus.WithFields(logrus.Fields{
				"to":      to,
				"subject": subject,
				"error":   err.Error(),
			}).Error("Email send failed")
		}
	}()
}
