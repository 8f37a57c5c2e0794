// Package mpesa is a client for the Safaricom Daraja STK push API. The
// gateway answers a push synchronously with an acknowledgement only; the
// final payment outcome arrives later on the configured callback URL.
package mpesa

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
	"sync"
	"time"
)

// ErrGateway marks transport failures and non-2xx gateway responses.
// Callers surface it without retrying.
var ErrGateway = errors.New("mpesa gateway error")

// ErrInvalidPhone is returned when a phone number cannot be normalized
// to the international format the gateway expects.
var ErrInvalidPhone = errors.New("invalid phone number")

const countryCode = "254"

type Config struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	Passkey        string
	CallbackURL    string
	Timeout        time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	now        func() time.Time

	// mu guards the cached access token; refresh happens under the lock
	// so concurrent pushes trigger at most one token request.
	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// STKPushResponse is the gateway's synchronous acknowledgement.
// CheckoutRequestID is the external reference later echoed back on the
// asynchronous result callback.
type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// NormalizePhone converts a subscriber number into the canonical
// international form: separators stripped, a leading "0" replaced with
// the country code, a leading "+" dropped.
func NormalizePhone(phone string) (string, error) {
	normalized := strings.TrimSpace(phone)
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")

	switch {
	case strings.HasPrefix(normalized, "0"):
		normalized = countryCode + normalized[1:]
	case strings.HasPrefix(normalized, "+"):
		normalized = normalized[1:]
	}

	if len(normalized) < 10 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}
	for _, r := range normalized {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
		}
	}
	return normalized, nil
}

// accessToken returns the cached OAuth credential, refreshing it from
// the gateway when missing or expired.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	url := c.cfg.BaseURL + "/oauth/v1/generate?grant_type=client_credentials"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.cfg.ConsumerKey + ":" + c.cfg.ConsumerSecret))
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token request: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%w: token request returned %d: %s", ErrGateway, resp.StatusCode, body)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("%w: decoding token response: %v", ErrGateway, err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrGateway)
	}

	ttl := 3599 * time.Second
	if tr.ExpiresIn != "" {
		if parsed, err := time.ParseDuration(tr.ExpiresIn + "s"); err == nil {
			ttl = parsed
		}
	}

	c.token = tr.AccessToken
	// refresh one minute early so in-flight pushes never carry a stale token
	c.tokenExpiry = c.now().Add(ttl - time.Minute)
	return c.token, nil
}

// STKPush initiates a mobile-money payment request for the given amount
// (whole shillings) against the subscriber's phone. hireRef ties the
// push back to the hire record for operator-side tracing.
func (c *Client) STKPush(ctx context.Context, amount int64, phone, hireRef string) (*STKPushResponse, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	timestamp := c.now().UTC().Format("20060102150405")
	password := base64.StdEncoding.EncodeToString([]byte(c.cfg.ShortCode + c.cfg.Passkey + timestamp))

	payload := map[string]interface{}{
		"BusinessShortCode": c.cfg.ShortCode,
		"Password":          password,
		"Timestamp":         timestamp,
		"TransactionType":   "CustomerPayBillOnline",
		"Amount":            amount,
		"PartyA":            normalized,
		"PartyB":            c.cfg.ShortCode,
		"PhoneNumber":       normalized,
		"CallBackURL":       c.cfg.CallbackURL,
		"AccountReference":  hireRef,
		"TransactionDesc":   "Hire Payment",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := c.cfg.BaseURL + "/mpesa/stkpush/v1/processrequest"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: stk push: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: stk push returned %d: %s", ErrGateway, resp.StatusCode, respBody)
	}

	var pushResp STKPushResponse
	if err := json.NewDecoder(resp.Body).Decode(&pushResp); err != nil {
		return nil, fmt.Errorf("%w: decoding stk push response: %v", ErrGateway, err)
	}
	if pushResp.CheckoutRequestID == "" {
		return nil, fmt.Errorf("%w: response missing CheckoutRequestID", ErrGateway)
	}
	return &pushResp, nil
}
