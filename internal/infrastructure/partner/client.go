// Package partner implements the HTTP client for the partner payment gateway.
package partner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/AndreiMGagiu/TrustPass/internal/config"
)

const authPath = "/paygate/auth/"

type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

func NewClient(cfg config.PartnerConfig) *Client {
	return &Client{
		baseURL:      cfg.BaseURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

// ExchangeToken converts the purchase's trade details into an access token and
// partner id. Single synchronous attempt; any outcome other than a 2xx response
// carrying both accessToken and od_id is an AccessTokenError.
func (c *Client) ExchangeToken(ctx context.Context, req TokenRequest) (*TokenResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("error marshalling json: %w", err)
	}

	url := c.baseURL + authPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Partner-Client-Id", c.clientID)
	httpReq.Header.Set("X-Partner-Secret", c.clientSecret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &AccessTokenError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AccessTokenError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &AccessTokenError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, &AccessTokenError{StatusCode: resp.StatusCode, Body: string(body), Err: err}
	}

	if tokenResp.AccessToken == "" || tokenResp.OdID == "" {
		return nil, &AccessTokenError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return &tokenResp, nil
}
