// Package notify implements the downstream status notification client.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/AndreiMGagiu/TrustPass/internal/config"
	"github.com/AndreiMGagiu/TrustPass/internal/domain"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.NotifierConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

type statusPayload struct {
	Status string `json:"status"`
}

// NotifyStatus propagates the purchase's final status to the notification
// target. Called after the status is already durably persisted; a failure here
// must not roll that transition back, so the caller only reports it.
func (c *Client) NotifyStatus(ctx context.Context, purchaseID string, status domain.PurchaseStatus) error {
	jsonData, err := json.Marshal(statusPayload{Status: string(status)})
	if err != nil {
		return fmt.Errorf("error marshalling json: %w", err)
	}

	url := fmt.Sprintf("%s/api/purchase/%s", c.baseURL, purchaseID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &NotificationError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &NotificationError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return nil
}
