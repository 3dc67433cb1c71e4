package tuya

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"zinnia/internal/application"
	"zinnia/internal/infra"
)

const (
	tokenPath = "/v1.0/token?grant_type=1"

	// Tokens are refreshed this long before Tuya expires them.
	tokenEarlyExpiry = 5 * time.Minute
)

// Client is a signed Tuya OpenAPI client. It owns authentication, request
// signing and retries.
type Client struct {
	clientID   string
	secret     string
	baseURL    string
	httpClient *http.Client
	retry      infra.RetryConfig
	logger     *slog.Logger

	tokens oauth2.TokenSource
}

func Endpoint(region string) string {
	switch strings.ToLower(region) {
	case "eu":
		return "https://openapi.tuyaeu.com"
	case "cn":
		return "https://openapi.tuyacn.com"
	case "in":
		return "https://openapi.tuyain.com"
	default:
		return "https://openapi.tuyaus.com"
	}
}

func NewClient(clientID, secret, region string) *Client {
	return NewClientWithURL(clientID, secret, Endpoint(region))
}

func NewClientWithURL(clientID, secret, baseURL string) *Client {
	c := &Client{
		clientID:   clientID,
		secret:     secret,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		retry:      infra.DefaultRetryConfig(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	c.tokens = oauth2.ReuseTokenSourceWithExpiry(nil, tokenSource{c}, tokenEarlyExpiry)
	return c
}

func (c *Client) WithRetry(cfg infra.RetryConfig) *Client {
	c.retry = cfg
	return c
}

func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

func (c *Client) WithLogger(logger *slog.Logger) *Client {
	c.logger = logger
	return c
}

func (c *Client) Post(ctx context.Context, path string, body any) (*application.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("encoding body: %w", err)
		}
	}
	return c.call(ctx, http.MethodPost, path, payload)
}

func (c *Client) Get(ctx context.Context, path string) (*application.Response, error) {
	return c.call(ctx, http.MethodGet, path, nil)
}

func (c *Client) call(ctx context.Context, method, path string, body []byte) (*application.Response, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("obtaining access token: %w", err)
	}

	raw, err := c.doRequest(ctx, method, path, token.AccessToken, body)
	if err != nil {
		return nil, err
	}

	var resp application.Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	return &resp, nil
}

func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body []byte) ([]byte, error) {
	cfg := c.retry
	cfg.OnRetry = func(attempt int, delay time.Duration, err error) {
		c.logger.Warn("retrying tuya request",
			"method", method,
			"path", path,
			"attempt", attempt,
			"delay", delay,
			"error", err,
		)
	}

	var respBody []byte
	err := infra.WithRetry(ctx, cfg, func() error {
		var bodyReader io.Reader
		if body != nil {
			bodyReader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
		if err != nil {
			return infra.Permanent(fmt.Errorf("creating request: %w", err))
		}

		c.sign(req, accessToken, body)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}

		if infra.IsRetryableHTTPStatus(resp.StatusCode) {
			return fmt.Errorf("tuya API error %d: %s", resp.StatusCode, string(respBody))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return respBody, nil
}

func (c *Client) fetchToken(ctx context.Context) (*oauth2.Token, error) {
	raw, err := c.doRequest(ctx, http.MethodGet, tokenPath, "", nil)
	if err != nil {
		return nil, fmt.Errorf("sending token request: %w", err)
	}

	var tokenResp struct {
		Success bool   `json:"success"`
		Code    int    `json:"code"`
		Msg     string `json:"msg"`
		Result  struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
			ExpireTime   int64  `json:"expire_time"`
			UID          string `json:"uid"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &tokenResp); err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	if !tokenResp.Success {
		return nil, fmt.Errorf("token error %d: %s", tokenResp.Code, tokenResp.Msg)
	}

	token := &oauth2.Token{
		AccessToken:  tokenResp.Result.AccessToken,
		RefreshToken: tokenResp.Result.RefreshToken,
		Expiry:       time.Now().Add(time.Duration(tokenResp.Result.ExpireTime) * time.Second),
	}
	return token.WithExtra(map[string]any{"uid": tokenResp.Result.UID}), nil
}

// sign sets the Tuya OpenAPI HMAC-SHA256 headers. accessToken is empty for
// the token request itself.
func (c *Client) sign(req *http.Request, accessToken string, body []byte) {
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	nonce := uuid.NewString()
	path := req.URL.RequestURI()

	req.Header.Set("client_id", c.clientID)
	if accessToken != "" {
		req.Header.Set("access_token", accessToken)
	}
	req.Header.Set("t", timestamp)
	req.Header.Set("nonce", nonce)
	req.Header.Set("sign_method", "HMAC-SHA256")
	req.Header.Set("sign", c.calcSign(accessToken, timestamp, nonce, req.Method, path, body))
}

func (c *Client) calcSign(accessToken, timestamp, nonce, method, path string, body []byte) string {
	str := c.clientID + accessToken + timestamp + nonce + stringToSign(method, path, body)
	h := hmac.New(sha256.New, []byte(c.secret))
	h.Write([]byte(str))
	return strings.ToUpper(hex.EncodeToString(h.Sum(nil)))
}

func stringToSign(method, path string, body []byte) string {
	bodyHash := sha256.Sum256(body)
	return method + "\n" + hex.EncodeToString(bodyHash[:]) + "\n\n" + path
}

// tokenSource adapts the token endpoint to oauth2 so the access token is
// cached and refreshed by oauth2.ReuseTokenSourceWithExpiry. The HTTP client
// timeout bounds each fetch.
type tokenSource struct {
	c *Client
}

func (s tokenSource) Token() (*oauth2.Token, error) {
	return s.c.fetchToken(context.Background())
}
