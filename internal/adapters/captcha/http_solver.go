package captcha

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/euserv-renew/internal/ports"
)

const maxResponseBytes = 64 << 10

// HTTPSolver sends the captcha image, base64 encoded, to an OCR server
// exposing the ddddocr "b64/text" endpoint.
type HTTPSolver struct {
	Endpoint       string
	RequestTimeout time.Duration
	HTTPClient     *http.Client
}

var _ ports.CaptchaSolver = (*HTTPSolver)(nil)

type ocrResponse struct {
	Status int    `json:"status"`
	Result string `json:"result"`
	Msg    string `json:"msg"`
}

func (s *HTTPSolver) Solve(ctx context.Context, image []byte) (string, error) {
	if strings.TrimSpace(s.Endpoint) == "" {
		return "", errors.New("captcha endpoint is required")
	}
	if len(image) == 0 {
		return "", errors.New("captcha image is empty")
	}

	requestCtx, cancel := s.requestContext(ctx)
	defer cancel()

	payload := base64.StdEncoding.EncodeToString(image)
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, s.Endpoint, bytes.NewBufferString(payload))
	if err != nil {
		return "", fmt.Errorf("create ocr request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("post captcha to ocr server: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read ocr response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ocr server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded ocrResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decode ocr response: %w", err)
	}
	if decoded.Status != 0 && decoded.Status != http.StatusOK {
		return "", fmt.Errorf("ocr server error %d: %s", decoded.Status, decoded.Msg)
	}

	return normalize(decoded.Result)
}

func (s *HTTPSolver) httpClient() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return http.DefaultClient
}

func (s *HTTPSolver) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	timeout := s.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

// normalize strips whitespace and anything the portal form would not
// accept. An empty result is an error so the login attempt fails fast.
func normalize(raw string) (string, error) {
	var sb strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("captcha solver returned no usable text (%q)", raw)
	}
	return sb.String(), nil
}
