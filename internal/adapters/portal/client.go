package portal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/euserv-renew/internal/domain"
	"github.com/bnema/euserv-renew/internal/ports"
	"golang.org/x/net/publicsuffix"
)

const (
	DefaultBaseURL   = "https://support.euserv.com"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	loginOrigin      = "https://www.euserv.com"

	indexPath   = "/index.iphp"
	captchaPath = "/securimage_show.php"
	logoPath    = "/pic/logo_small.png"

	sessionCookieName = "PHPSESSID"
	extendPrefix      = "kc2_customer_contract_details_extend_contract_"
	maxPageBytes      = 4 << 20
)

// Client opens sessions against the customer support portal.
type Client struct {
	BaseURL        string
	UserAgent      string
	RequestTimeout time.Duration
	// Transport is shared by all sessions; cookie jars are not.
	Transport http.RoundTripper
}

var _ ports.Portal = (*Client)(nil)

func (c *Client) NewSession() (ports.PortalSession, error) {
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	userAgent := c.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Session{
		base:           base,
		userAgent:      userAgent,
		requestTimeout: c.RequestTimeout,
		http:           &http.Client{Jar: jar, Transport: c.Transport},
	}, nil
}

// Session is one cookie-bound conversation with the portal.
type Session struct {
	base           *url.URL
	userAgent      string
	requestTimeout time.Duration
	http           *http.Client
	sessID         string
}

var _ ports.PortalSession = (*Session)(nil)

func (s *Session) ID() string {
	return s.sessID
}

func (s *Session) LoadLoginPage(ctx context.Context) error {
	resp, err := s.do(ctx, http.MethodGet, indexPath, nil, nil, loginOrigin)
	if err != nil {
		return fmt.Errorf("get login page: %w", err)
	}
	drain(resp)
	if err := checkStatus(resp); err != nil {
		return fmt.Errorf("get login page: %w", err)
	}

	sessID := sessionIDFromResponse(resp)
	if sessID == "" {
		sessID = s.sessionIDFromJar()
	}
	if sessID == "" {
		return fmt.Errorf("%w: login page did not set %s", domain.ErrUnexpectedPage, sessionCookieName)
	}
	s.sessID = sessID

	// Browsers load the logo right after the page; the portal appears to
	// check for it. A failure here is not worth failing the login over.
	if logo, err := s.do(ctx, http.MethodGet, logoPath, nil, nil, loginOrigin); err == nil {
		drain(logo)
	}

	return nil
}

func (s *Session) SubmitCredentials(ctx context.Context, account domain.Account) (domain.LoginPage, error) {
	form := url.Values{}
	form.Set("email", account.Username)
	form.Set("password", account.Password)
	form.Set("form_selected_language", "en")
	form.Set("Submit", "Login")
	form.Set("subaction", "login")
	form.Set("sess_id", s.sessID)

	body, err := s.postPage(ctx, form, loginOrigin)
	if err != nil {
		return domain.PageRejected, fmt.Errorf("post login form: %w", err)
	}
	return classifyLoginPage(body), nil
}

func (s *Session) CaptchaImage(ctx context.Context) ([]byte, error) {
	resp, err := s.do(ctx, http.MethodGet, captchaPath, nil, nil, loginOrigin)
	if err != nil {
		return nil, fmt.Errorf("get captcha image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("get captcha image: %w", err)
	}

	image, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read captcha image: %w", err)
	}
	if len(image) == 0 {
		return nil, errors.New("captcha image is empty")
	}
	return image, nil
}

func (s *Session) SubmitCaptcha(ctx context.Context, code string) (domain.LoginPage, error) {
	form := url.Values{}
	form.Set("subaction", "login")
	form.Set("sess_id", s.sessID)
	form.Set("captcha_code", code)

	body, err := s.postPage(ctx, form, loginOrigin)
	if err != nil {
		return domain.PageRejected, fmt.Errorf("post captcha: %w", err)
	}
	return classifyLoginPage(body), nil
}

func (s *Session) ListResources(ctx context.Context) ([]domain.Resource, error) {
	query := url.Values{}
	query.Set("sess_id", s.sessID)

	resp, err := s.do(ctx, http.MethodGet, indexPath, query, nil, loginOrigin)
	if err != nil {
		return nil, fmt.Errorf("get order overview: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("get order overview: %w", err)
	}

	return parseResources(io.LimitReader(resp.Body, maxPageBytes))
}

func (s *Session) ChooseOrder(ctx context.Context, id domain.ResourceID) error {
	form := url.Values{}
	form.Set("Submit", "Extend contract")
	form.Set("sess_id", s.sessID)
	form.Set("ord_no", string(id))
	form.Set("subaction", "choose_order")
	form.Set("choose_order_subaction", "show_contract_details")

	if _, err := s.postPage(ctx, form, s.base.String()); err != nil {
		return fmt.Errorf("post choose_order: %w", err)
	}
	return nil
}

func (s *Session) RequestPIN(ctx context.Context, id domain.ResourceID) error {
	form := url.Values{}
	form.Set("sess_id", s.sessID)
	form.Set("subaction", "show_kc2_security_password_dialog")
	form.Set("prefix", extendPrefix)
	form.Set("type", "1")

	if _, err := s.postPage(ctx, form, s.base.String()); err != nil {
		return fmt.Errorf("post security password dialog for %s: %w", id, err)
	}
	return nil
}

type tokenResponse struct {
	RS    string `json:"rs"`
	Token struct {
		Value string `json:"value"`
	} `json:"token"`
}

func (s *Session) ExchangePIN(ctx context.Context, id domain.ResourceID, pin domain.PIN) (domain.RenewalToken, error) {
	form := url.Values{}
	form.Set("auth", string(pin))
	form.Set("sess_id", s.sessID)
	form.Set("subaction", "kc2_security_password_get_token")
	form.Set("prefix", extendPrefix)
	form.Set("type", "1")
	form.Set("ident", extendPrefix+string(id))

	body, err := s.postPage(ctx, form, s.base.String())
	if err != nil {
		return "", fmt.Errorf("post token request: %w", err)
	}

	var payload tokenResponse
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return "", fmt.Errorf("%w: decode token response: %w", domain.ErrTokenExchange, err)
	}
	if payload.RS != "success" {
		return "", fmt.Errorf("%w: rs=%q", domain.ErrTokenExchange, payload.RS)
	}
	if payload.Token.Value == "" {
		return "", fmt.Errorf("%w: token response missing value", domain.ErrTokenExchange)
	}

	return domain.RenewalToken(payload.Token.Value), nil
}

func (s *Session) ExtendContract(ctx context.Context, id domain.ResourceID, token domain.RenewalToken) error {
	form := url.Values{}
	form.Set("sess_id", s.sessID)
	form.Set("ord_id", string(id))
	form.Set("subaction", "kc2_customer_contract_details_extend_contract_term")
	form.Set("token", string(token))

	resp, err := s.do(ctx, http.MethodPost, indexPath, nil, form, s.base.String())
	if err != nil {
		return fmt.Errorf("post contract extension: %w", err)
	}
	drain(resp)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", domain.ErrSubmission, resp.StatusCode)
	}
	return nil
}

func (s *Session) Close() {
	s.http.CloseIdleConnections()
	s.http.Jar = nil
	s.sessID = ""
}

func (s *Session) postPage(ctx context.Context, form url.Values, origin string) (string, error) {
	resp, err := s.do(ctx, http.MethodPost, indexPath, nil, form, origin)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return string(body), nil
}

func (s *Session) do(ctx context.Context, method, path string, query url.Values, form url.Values, origin string) (*http.Response, error) {
	endpoint := s.base.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	requestCtx, cancel := s.requestContext(ctx)
	req, err := http.NewRequestWithContext(requestCtx, method, endpoint.String(), body)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Origin", origin)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Referer", s.base.JoinPath(indexPath).String())
	}

	resp, err := s.http.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	resp.Body = cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

func (s *Session) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := s.requestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func (s *Session) sessionIDFromJar() string {
	if s.http.Jar == nil {
		return ""
	}
	for _, cookie := range s.http.Jar.Cookies(s.base) {
		if cookie.Name == sessionCookieName {
			return cookie.Value
		}
	}
	return ""
}

func sessionIDFromResponse(resp *http.Response) string {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookieName && cookie.Value != "" {
			return cookie.Value
		}
	}
	return ""
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxPageBytes))
	_ = resp.Body.Close()
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse portal base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("portal base url must use http or https")
	}
	if parsed.Host == "" {
		return nil, errors.New("portal base url host is required")
	}
	return parsed, nil
}
