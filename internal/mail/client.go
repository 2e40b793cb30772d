package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"github.com/mzafir/hawk-ai-agent/internal/config"
	"github.com/mzafir/hawk-ai-agent/internal/logging"
	"github.com/mzafir/hawk-ai-agent/internal/thread"
)

// Client searches an IMAP mailbox for project-related messages and
// converts them into analysis-core messages.
type Client struct {
	cfg    config.MailConfig
	logger logging.Logger
}

// NewClient validates the mailbox configuration and returns a Client.
// No connection is made until Search.
func NewClient(cfg config.MailConfig, logger logging.Logger) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("imap host is empty")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("imap port must be between 1 and 65535")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{cfg: cfg, logger: logger}, nil
}

// Search dials the server, runs one search per term, unions the
// results and fetches the most recent matches. Zero results is a
// success. Individual messages that fail to decode are skipped with a
// debug log rather than failing the search.
func (c *Client) Search(ctx context.Context, filter Filter) ([]thread.Message, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	client, cleanup, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	mailbox := c.cfg.Mailbox
	if mailbox == "" {
		mailbox = "INBOX"
	}
	if _, err := client.Select(mailbox, nil).Wait(); err != nil {
		return nil, fmt.Errorf("select %s: %w", mailbox, err)
	}

	uids := c.searchTerms(client, filter)
	if len(uids) == 0 {
		return nil, nil
	}

	// Higher UIDs are newer; process the most recent first.
	sort.Slice(uids, func(i, j int) bool { return uids[i] > uids[j] })
	limit := filter.Limit
	if limit <= 0 || limit > len(uids) {
		limit = len(uids)
	}
	uids = uids[:limit]

	return c.fetch(client, uids)
}

func (c *Client) dial(ctx context.Context) (*imapclient.Client, func(), error) {
	address := net.JoinHostPort(c.cfg.Host, strconv.Itoa(c.cfg.Port))
	options := &imapclient.Options{}

	var (
		client *imapclient.Client
		err    error
	)
	if c.cfg.UseTLS {
		options.TLSConfig = &tls.Config{
			ServerName:         c.cfg.Host,
			InsecureSkipVerify: c.cfg.InsecureSkipVerify,
		}
		client, err = imapclient.DialTLS(address, options)
	} else {
		client, err = imapclient.DialInsecure(address, options)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("dial imap %s: %w", address, err)
	}

	if err := client.Login(c.cfg.Username, c.cfg.Password.Value()).Wait(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("imap login failed: %w", err)
	}

	stopClose := context.AfterFunc(ctx, func() {
		_ = client.Close()
	})

	cleanup := func() {
		stopClose()
		if ctx.Err() == nil {
			if err := client.Logout().Wait(); err != nil {
				c.logger.Debug("imap logout failed", logging.KeyError, err)
			}
		}
		_ = client.Close()
	}

	c.logger.Debug("imap connection established", "address", address, "mailbox", c.cfg.Mailbox)
	return client, cleanup, nil
}

// searchTerms runs one subject-or-body search per term and unions the
// matched UIDs. A failed search for one term is logged and skipped so
// the remaining terms still contribute results.
func (c *Client) searchTerms(client *imapclient.Client, filter Filter) []imap.UID {
	seen := make(map[imap.UID]bool)
	var uids []imap.UID

	for _, term := range filter.Terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		criteria := &imap.SearchCriteria{
			Or: [][2]imap.SearchCriteria{{
				{Header: []imap.SearchCriteriaHeaderField{{Key: "Subject", Value: term}}},
				{Body: []string{term}},
			}},
		}
		if !filter.Since.IsZero() {
			criteria.Since = filter.Since
		}

		data, err := client.UIDSearch(criteria, nil).Wait()
		if err != nil {
			c.logger.Warn("imap search failed", "term", term, logging.KeyError, err)
			continue
		}
		matched := data.AllUIDs()
		c.logger.Debug("imap search", "term", term, "matches", len(matched))
		for _, uid := range matched {
			if !seen[uid] {
				seen[uid] = true
				uids = append(uids, uid)
			}
		}
	}
	return uids
}

func (c *Client) fetch(client *imapclient.Client, uids []imap.UID) ([]thread.Message, error) {
	wholeMessage := &imap.FetchItemBodySection{}
	options := &imap.FetchOptions{
		Envelope:    true,
		BodySection: []*imap.FetchItemBodySection{wholeMessage},
	}

	buffers, err := client.Fetch(imap.UIDSetNum(uids...), options).Collect()
	if err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}

	msgs := make([]thread.Message, 0, len(buffers))
	for _, buf := range buffers {
		if buf.Envelope == nil {
			c.logger.Debug("skipping message without envelope", "uid", buf.UID)
			continue
		}
		body := extractTextBody(buf.FindBodySection(wholeMessage))
		msgs = append(msgs, messageFromEnvelope(buf.Envelope, body))
	}
	return msgs, nil
}

// messageFromEnvelope converts a fetched envelope and body into the
// analysis core's message shape.
func messageFromEnvelope(env *imap.Envelope, body string) thread.Message {
	sender := ""
	if len(env.From) > 0 {
		sender = env.From[0].Addr()
	}
	date := ""
	if !env.Date.IsZero() {
		date = env.Date.Format(headerDateLayout)
	}
	if len(body) > maxBodyBytes {
		body = body[:maxBodyBytes]
	}
	return thread.Message{
		Subject: env.Subject,
		Sender:  sender,
		Date:    date,
		Body:    body,
	}
}
