package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/euserv-renew/internal/domain"
	"github.com/bnema/euserv-renew/internal/ports"
)

const (
	DefaultTelegramAPI = "https://api.telegram.org"

	telegramMaxMessage = 4096
	maxResponseBytes   = 64 << 10
)

// Telegram sends the short form of a notification: title and summary, no
// run log.
type Telegram struct {
	BotToken       string
	ChatID         string
	APIBaseURL     string
	RequestTimeout time.Duration
	HTTPClient     *http.Client
}

var _ ports.Notifier = (*Telegram)(nil)

type telegramRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (t *Telegram) Name() string { return "telegram" }

func (t *Telegram) Notify(ctx context.Context, n domain.Notification) error {
	if t.BotToken == "" || t.ChatID == "" {
		return errors.New("telegram bot token and chat id are required")
	}

	payload, err := json.Marshal(telegramRequest{
		ChatID:    t.ChatID,
		Text:      telegramText(n),
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("encode telegram message: %w", err)
	}

	base := t.APIBaseURL
	if base == "" {
		base = DefaultTelegramAPI
	}
	endpoint := strings.TrimRight(base, "/") + "/bot" + t.BotToken + "/sendMessage"

	body, status, err := postJSON(ctx, httpClient(t.HTTPClient), t.RequestTimeout, endpoint, payload)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", redact(err, t.BotToken))
	}

	var decoded telegramResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Errorf("decode telegram response (status %d): %w", status, err)
	}
	if status != http.StatusOK || !decoded.OK {
		return fmt.Errorf("telegram rejected message (status %d): %s", status, decoded.Description)
	}
	return nil
}

func telegramText(n domain.Notification) string {
	text := "<b>" + html.EscapeString(n.Title) + "</b>\n" + html.EscapeString(n.Summary)
	if r := []rune(text); len(r) > telegramMaxMessage {
		text = string(r[:telegramMaxMessage])
	}
	return text
}

func httpClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return http.DefaultClient
}

func postJSON(ctx context.Context, client *http.Client, timeout time.Duration, endpoint string, payload []byte) ([]byte, int, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

// redact keeps the bot token out of logged transport errors, which quote
// the request URL.
func redact(err error, secret string) error {
	if secret == "" || !strings.Contains(err.Error(), secret) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), secret, "***"))
}
