package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	jwemail "github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/brandon/mail-dialog/internal/config"
)

// EmailMessage is a committed dialog ready for delivery
type EmailMessage struct {
	To         []string
	Cc         []string
	Subject    string
	BodyText   string
	InReplyTo  string
	References []string
}

// SMTPClient delivers messages for one account
type SMTPClient struct {
	config *config.AccountConfig
	logger *logrus.Logger
	send   func(e *jwemail.Email, addr string, auth smtp.Auth, tlsConfig *tls.Config) error
}

// NewSMTPClient creates a new SMTP client
func NewSMTPClient(cfg *config.AccountConfig) *SMTPClient {
	c := &SMTPClient{
		config: cfg,
		logger: logrus.New(),
	}
	if cfg.SMTPPort == 465 {
		c.send = (*jwemail.Email).SendWithTLS
	} else {
		c.send = (*jwemail.Email).SendWithStartTLS
	}
	return c
}

// Send delivers msg. Port 465 uses implicit TLS, anything else STARTTLS.
func (c *SMTPClient) Send(msg *EmailMessage) error {
	e, err := c.buildEmail(msg)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", c.config.SMTPHost, c.config.SMTPPort)
	var auth smtp.Auth
	if c.config.SMTPPassword != "" {
		auth = smtp.PlainAuth("", c.config.SMTPUsername, c.config.SMTPPassword, c.config.SMTPHost)
	}

	if err := c.send(e, addr, auth, &tls.Config{ServerName: c.config.SMTPHost}); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"account": c.config.Name,
		"to":      len(msg.To),
		"cc":      len(msg.Cc),
	}).Info("Email sent")
	return nil
}

// Build renders msg as RFC 5322 bytes
func (c *SMTPClient) Build(msg *EmailMessage) ([]byte, error) {
	e, err := c.buildEmail(msg)
	if err != nil {
		return nil, err
	}
	data, err := e.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return data, nil
}

func (c *SMTPClient) buildEmail(msg *EmailMessage) (*jwemail.Email, error) {
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}

	e := jwemail.NewEmail()
	e.From = c.config.Address
	e.To = append([]string(nil), msg.To...)
	if len(msg.Cc) > 0 {
		e.Cc = append([]string(nil), msg.Cc...)
	}
	e.Subject = msg.Subject
	e.Text = []byte(msg.BodyText)

	if msg.InReplyTo != "" {
		e.Headers.Set("In-Reply-To", msg.InReplyTo)
		refs := append([]string(nil), msg.References...)
		if !contains(refs, msg.InReplyTo) {
			refs = append(refs, msg.InReplyTo)
		}
		e.Headers.Set("References", strings.Join(refs, " "))
	}
	return e, nil
}

// SetLogger sets the logger for the client
func (c *SMTPClient) SetLogger(logger *logrus.Logger) {
	c.logger = logger
}

func contains(slice []string, value string) bool {
	for _, s := range slice {
		if s == value {
			return true
		}
	}
	return false
}
