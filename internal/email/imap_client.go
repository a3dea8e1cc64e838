package email

import (
	"crypto/tls"
	"fmt"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/jhillyerd/enmime"
	"github.com/sirupsen/logrus"

	"github.com/brandon/mail-dialog/internal/config"
	"github.com/brandon/mail-dialog/pkg/types"
)

// DefaultFetchLimit is how many recent messages a sync reads per folder
const DefaultFetchLimit = 100

// IMAPClient reads recent mail to learn correspondents
type IMAPClient struct {
	config *config.AccountConfig
	client *client.Client
	logger *logrus.Logger
	dial   func(addr string, cfg *config.AccountConfig) (*client.Client, error)
}

// NewIMAPClient creates a new IMAP client (does not connect immediately)
func NewIMAPClient(cfg *config.AccountConfig) *IMAPClient {
	return &IMAPClient{
		config: cfg,
		logger: logrus.New(),
		dial:   dialTLS,
	}
}

func dialTLS(addr string, cfg *config.AccountConfig) (*client.Client, error) {
	return client.DialTLS(addr, &tls.Config{
		ServerName: cfg.IMAPHost,
		MinVersion: tls.VersionTLS12,
	})
}

// Connect establishes a connection to the IMAP server
func (c *IMAPClient) Connect() error {
	if c.client != nil {
		return nil
	}

	addr := fmt.Sprintf("%s:%d", c.config.IMAPHost, c.config.IMAPPort)
	cl, err := c.dial(addr, c.config)
	if err != nil {
		return fmt.Errorf("failed to connect to IMAP server: %w", err)
	}

	if err := cl.Login(c.config.IMAPUsername, c.config.IMAPPassword); err != nil {
		c.logger.WithError(err).Error("Failed to login to IMAP server")
		cl.Logout() //nolint:errcheck
		return fmt.Errorf("failed to login to IMAP server: %w", err)
	}

	c.client = cl
	c.logger.WithField("account", c.config.Name).Info("Connected to IMAP server")
	return nil
}

// Close closes the IMAP connection
func (c *IMAPClient) Close() error {
	if c.client == nil {
		return nil
	}
	err := c.client.Logout()
	c.client = nil
	return err
}

// FetchRecent reads up to limit of the newest messages in folder and
// returns them with their total message count.
func (c *IMAPClient) FetchRecent(folder string, limit uint32) ([]*types.Email, uint32, error) {
	if err := c.Connect(); err != nil {
		return nil, 0, err
	}
	if limit == 0 {
		limit = DefaultFetchLimit
	}

	mbox, err := c.client.Select(folder, true)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to select folder: %w", err)
	}
	if mbox.Messages == 0 {
		return []*types.Email{}, 0, nil
	}

	start := uint32(1)
	if mbox.Messages > limit {
		start = mbox.Messages - limit + 1
	}
	seqSet := new(imap.SeqSet)
	seqSet.AddRange(start, mbox.Messages)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchEnvelope, imap.FetchUid, section.FetchItem()}

	messages := make(chan *imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- c.client.Fetch(seqSet, items, messages)
	}()

	var emails []*types.Email
	for msg := range messages {
		emails = append(emails, c.parseMessage(msg, section, folder))
	}
	if err := <-done; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch messages: %w", err)
	}

	return emails, mbox.Messages, nil
}

func (c *IMAPClient) parseMessage(msg *imap.Message, section *imap.BodySectionName, folder string) *types.Email {
	email := &types.Email{
		UID:        msg.Uid,
		FolderPath: folder,
		Recipients: []string{},
	}

	if env := msg.Envelope; env != nil {
		email.MessageID = env.MessageId
		email.Subject = env.Subject
		email.Date = env.Date
		if len(env.From) > 0 {
			email.SenderName = env.From[0].PersonalName
			email.SenderEmail = env.From[0].Address()
		}
		for _, list := range [][]*imap.Address{env.To, env.Cc} {
			for _, a := range list {
				email.Recipients = append(email.Recipients, a.Address())
			}
		}
	}

	literal := msg.GetBody(section)
	if literal == nil {
		c.logger.WithField("uid", msg.Uid).Debug("Message has no body section")
		return email
	}
	parsed, err := enmime.ReadEnvelope(literal)
	if err != nil {
		c.logger.WithError(err).WithField("uid", msg.Uid).Debug("Failed to parse message body")
		return email
	}
	email.BodyText = parsed.Text
	return email
}

// envelopeAddresses returns every mailbox named in a message's envelope
func envelopeAddresses(e *types.Email) []types.Address {
	addrs := make([]types.Address, 0, 1+len(e.Recipients))
	if e.SenderEmail != "" {
		addrs = append(addrs, types.Address{Name: e.SenderName, Email: e.SenderEmail})
	}
	for _, r := range e.Recipients {
		addrs = append(addrs, types.Address{Email: r})
	}
	return addrs
}

// SetLogger sets the logger for the client
func (c *IMAPClient) SetLogger(logger *logrus.Logger) {
	c.logger = logger
}
