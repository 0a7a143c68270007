// Package email sends plain-text mail over an authenticated SMTP session.
package email

import (
	"gopkg.in/mail.v2"
)

// Client holds the SMTP connection settings for one sender identity.
type Client struct {
	smtpHost string
	smtpPort int
	username string
	password string
	from     string
}

// NewClient creates a Client. The dialer negotiates STARTTLS with the server
// on every send, so each message gets its own encrypted session.
func NewClient(smtpHost string, smtpPort int, username, password, from string) *Client {
	return &Client{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers body as a plain-text message. The session is opened,
// authenticated, and closed within the call on every exit path.
func (c *Client) Send(to, subject, body string) error {
	message := mail.NewMessage()
	message.SetHeader("From", c.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	dialer := mail.NewDialer(c.smtpHost, c.smtpPort, c.username, c.password)

	return dialer.DialAndSend(message)
}
