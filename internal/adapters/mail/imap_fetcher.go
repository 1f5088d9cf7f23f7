package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"regexp"
	"strconv"
	"time"

	"github.com/bnema/euserv-renew/internal/ports"
	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	_ "github.com/emersion/go-message/charset"
	gomail "github.com/emersion/go-message/mail"
)

const (
	DefaultServer = "imap.gmail.com"
	DefaultPort   = 993
	DefaultFolder = "INBOX"

	dialTimeout     = 30 * time.Second
	maxMessageBytes = 1 << 20
)

var pinPattern = regexp.MustCompile(`PIN:\s*(\d{6})`)

type Config struct {
	Server   string
	Port     int
	Username string
	Password string
	Folder   string
}

// fetchFunc returns the raw RFC 822 bytes of the newest message, or nil when
// the mailbox is empty.
type fetchFunc func(ctx context.Context) ([]byte, error)

// IMAPFetcher reads the PIN from the newest message of one IMAP folder. It
// opens a fresh connection per call.
type IMAPFetcher struct {
	fetch fetchFunc
}

var _ ports.PinFetcher = (*IMAPFetcher)(nil)

func NewIMAPFetcher(cfg Config) (*IMAPFetcher, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("mail username and password are required")
	}
	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Folder == "" {
		cfg.Folder = DefaultFolder
	}

	return &IMAPFetcher{fetch: cfg.fetchLatest}, nil
}

func (f *IMAPFetcher) FetchLatestPIN(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	raw, err := f.fetch(ctx)
	if err != nil {
		return "", false, err
	}
	if raw == nil {
		return "", false, nil
	}

	return extractPIN(bytes.NewReader(raw))
}

func (cfg Config) fetchLatest(ctx context.Context) ([]byte, error) {
	addr := net.JoinHostPort(cfg.Server, strconv.Itoa(cfg.Port))
	dialer := &net.Dialer{Timeout: dialTimeout}

	c, err := client.DialWithDialerTLS(dialer, addr, &tls.Config{ServerName: cfg.Server})
	if err != nil {
		return nil, fmt.Errorf("dial imap %s: %w", addr, err)
	}
	stop := context.AfterFunc(ctx, func() { _ = c.Terminate() })
	defer func() {
		stop()
		_ = c.Logout()
	}()

	if err := c.Login(cfg.Username, cfg.Password); err != nil {
		return nil, fmt.Errorf("imap login: %w", err)
	}

	status, err := c.Select(cfg.Folder, true)
	if err != nil {
		return nil, fmt.Errorf("select folder %q: %w", cfg.Folder, err)
	}
	if status.Messages == 0 {
		return nil, nil
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(status.Messages)
	section := &imap.BodySectionName{Peek: true}

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqSet, []imap.FetchItem{section.FetchItem()}, messages)
	}()

	var raw []byte
	for msg := range messages {
		body := msg.GetBody(section)
		if body == nil {
			continue
		}
		raw, err = io.ReadAll(io.LimitReader(body, maxMessageBytes))
		if err != nil {
			return nil, fmt.Errorf("read message body: %w", err)
		}
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("fetch latest message: %w", err)
	}
	if raw == nil {
		return nil, errors.New("fetch latest message: server returned no body")
	}

	return raw, nil
}

// extractPIN scans inline text/plain parts, skipping attachments. A message
// without a match is not an error.
func extractPIN(r io.Reader) (string, bool, error) {
	mr, err := gomail.CreateReader(r)
	if err != nil {
		return "", false, fmt.Errorf("parse message: %w", err)
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return "", false, nil
		}
		if err != nil {
			return "", false, fmt.Errorf("read message part: %w", err)
		}

		header, ok := part.Header.(*gomail.InlineHeader)
		if !ok {
			continue
		}
		if disposition, _, _ := header.ContentDisposition(); disposition == "attachment" {
			continue
		}
		if mediaType, _, _ := mime.ParseMediaType(header.Get("Content-Type")); mediaType != "" && mediaType != "text/plain" {
			continue
		}

		body, err := io.ReadAll(io.LimitReader(part.Body, maxMessageBytes))
		if err != nil {
			return "", false, fmt.Errorf("read message part: %w", err)
		}
		if match := pinPattern.FindSubmatch(body); match != nil {
			return string(match[1]), true, nil
		}
	}
}
