package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/euserv-renew/internal/domain"
	"github.com/bnema/euserv-renew/internal/ports"
)

const (
	DefaultWxPusherEndpoint = "http://wxpusher.zjiecode.com/api/send/message"

	wxPusherContentHTML = 2
)

// WxPusher sends the long form of a notification, including the full run
// log.
type WxPusher struct {
	AppToken       string
	TopicID        int
	Endpoint       string
	RequestTimeout time.Duration
	HTTPClient     *http.Client
}

var _ ports.Notifier = (*WxPusher)(nil)

// NewWxPusher returns nil when either the token or the topic id is missing,
// so the channel is simply not built.
func NewWxPusher(appToken, topicID string) (*WxPusher, error) {
	appToken = strings.TrimSpace(appToken)
	topicID = strings.TrimSpace(topicID)
	if appToken == "" || topicID == "" {
		return nil, nil
	}

	id, err := strconv.Atoi(topicID)
	if err != nil {
		return nil, fmt.Errorf("parse wxpusher topic id %q: %w", topicID, err)
	}
	return &WxPusher{AppToken: appToken, TopicID: id}, nil
}

type wxPusherRequest struct {
	AppToken    string `json:"appToken"`
	Content     string `json:"content"`
	ContentType int    `json:"contentType"`
	TopicIDs    []int  `json:"topicIds"`
}

type wxPusherResponse struct {
	Code    int    `json:"code"`
	Msg     string `json:"msg"`
	Success bool   `json:"success"`
}

func (w *WxPusher) Name() string { return "wxpusher" }

func (w *WxPusher) Notify(ctx context.Context, n domain.Notification) error {
	if w.AppToken == "" || w.TopicID == 0 {
		return errors.New("wxpusher app token and topic id are required")
	}

	payload, err := json.Marshal(wxPusherRequest{
		AppToken:    w.AppToken,
		Content:     wxPusherContent(n),
		ContentType: wxPusherContentHTML,
		TopicIDs:    []int{w.TopicID},
	})
	if err != nil {
		return fmt.Errorf("encode wxpusher message: %w", err)
	}

	endpoint := w.Endpoint
	if endpoint == "" {
		endpoint = DefaultWxPusherEndpoint
	}

	body, status, err := postJSON(ctx, httpClient(w.HTTPClient), w.RequestTimeout, endpoint, payload)
	if err != nil {
		return fmt.Errorf("send wxpusher message: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("wxpusher returned status %d", status)
	}

	var decoded wxPusherResponse
	if err := json.Unmarshal(body, &decoded); err == nil && !decoded.Success && decoded.Code != 0 && decoded.Code != 1000 {
		return fmt.Errorf("wxpusher rejected message (code %d): %s", decoded.Code, decoded.Msg)
	}
	return nil
}

func wxPusherContent(n domain.Notification) string {
	var sb strings.Builder
	sb.WriteString("<b>" + html.EscapeString(n.Title) + "</b><br>")
	sb.WriteString(html.EscapeString(n.Summary))
	if n.Log != "" {
		sb.WriteString("<br><br>")
		sb.WriteString(strings.ReplaceAll(html.EscapeString(n.Log), "\n", "<br>"))
	}
	return sb.String()
}
