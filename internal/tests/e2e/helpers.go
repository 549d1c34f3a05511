package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/AndreiMGagiu/TrustPass/internal/application/services"
	"github.com/AndreiMGagiu/TrustPass/internal/application/services/testhelpers"
	"github.com/AndreiMGagiu/TrustPass/internal/config"
	"github.com/AndreiMGagiu/TrustPass/internal/infrastructure/notify"
	"github.com/AndreiMGagiu/TrustPass/internal/infrastructure/partner"
	"github.com/AndreiMGagiu/TrustPass/internal/infrastructure/persistence/postgres"
	"github.com/AndreiMGagiu/TrustPass/internal/interfaces/rest/handlers"
	"github.com/AndreiMGagiu/TrustPass/internal/interfaces/rest/middleware"
	"github.com/stretchr/testify/require"
)

// FakePartner stands in for the upstream token endpoint. Every auth call is
// recorded so tests can assert on the credentials and payload the gateway sent.
type FakePartner struct {
	server *httptest.Server

	mu       sync.Mutex
	Requests []PartnerAuthRequest
	Fail     bool
}

type PartnerAuthRequest struct {
	ClientID string
	Secret   string
	TradeID  string
}

func NewFakePartner() *FakePartner {
	fp := &FakePartner{}
	fp.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			TradeID string `json:"trade_id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		fp.mu.Lock()
		fp.Requests = append(fp.Requests, PartnerAuthRequest{
			ClientID: r.Header.Get("X-Partner-Client-Id"),
			Secret:   r.Header.Get("X-Partner-Secret"),
			TradeID:  body.TradeID,
		})
		fail := fp.Fail
		fp.mu.Unlock()

		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"accessToken": "e2e-token-" + body.TradeID,
			"od_id":       "e2e-od-" + body.TradeID,
		})
	}))
	return fp
}

func (fp *FakePartner) SetFail(fail bool) {
	fp.mu.Lock()
	fp.Fail = fail
	fp.mu.Unlock()
}

func (fp *FakePartner) Close() { fp.server.Close() }

// FakeNotifier records the status notifications the gateway pushes out.
type FakeNotifier struct {
	server *httptest.Server

	mu            sync.Mutex
	Notifications []StatusNotification
}

type StatusNotification struct {
	Path   string
	Status string
}

func NewFakeNotifier() *FakeNotifier {
	fn := &FakeNotifier{}
	fn.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status string `json:"status"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		fn.mu.Lock()
		fn.Notifications = append(fn.Notifications, StatusNotification{
			Path:   r.URL.Path,
			Status: body.Status,
		})
		fn.mu.Unlock()

		w.WriteHeader(http.StatusOK)
	}))
	return fn
}

func (fn *FakeNotifier) Close() { fn.server.Close() }

func (fn *FakeNotifier) Received() []StatusNotification {
	fn.mu.Lock()
	defer fn.mu.Unlock()
	out := make([]StatusNotification, len(fn.Notifications))
	copy(out, fn.Notifications)
	return out
}

// Stack is the whole gateway assembled against real postgres and fake upstreams.
type Stack struct {
	DB       *testhelpers.TestDatabase
	Partner  *FakePartner
	Notifier *FakeNotifier
	Server   *httptest.Server
	Repo     *postgres.PurchaseRepository
}

func SetupStack(t *testing.T) *Stack {
	td := testhelpers.SetupTestDatabase(t)
	fp := NewFakePartner()
	fn := NewFakeNotifier()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo := postgres.NewPurchaseRepository(td.DB)
	partnerClient := partner.NewClient(config.PartnerConfig{
		BaseURL:      fp.server.URL,
		ClientID:     "e2e-client",
		ClientSecret: "e2e-secret",
		ConnTimeout:  5 * time.Second,
	})
	notifyClient := notify.NewClient(config.NotifierConfig{
		BaseURL:     fn.server.URL,
		ConnTimeout: 5 * time.Second,
	})

	h := handlers.NewHandlers(
		services.NewInitiateService(repo, partnerClient, logger),
		services.NewReturnService(repo, notifyClient, logger),
		services.NewCheckService(repo),
		logger,
	)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)

	server := httptest.NewServer(handler)

	t.Cleanup(func() {
		server.Close()
		fp.Close()
		fn.Close()
		td.Cleanup(t)
	})

	return &Stack{DB: td, Partner: fp, Notifier: fn, Server: server, Repo: repo}
}

// TestClient wraps HTTP calls to the gateway.
type TestClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

type errorEnvelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreatePurchase posts the nested purchase payload and returns the raw
// response so tests can inspect the HTML redirect form or the error envelope.
func (c *TestClient) CreatePurchase(t *testing.T, params map[string]any) (*http.Response, string) {
	body, err := json.Marshal(map[string]any{"purchase": params})
	require.NoError(t, err)

	resp, err := c.httpClient.Post(c.baseURL+"/api/v1/purchases", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

// SendReturn delivers the partner's post-payment callback.
func (c *TestClient) SendReturn(t *testing.T, refTradeID, odStatus string) *http.Response {
	body, err := json.Marshal(map[string]string{
		"ref_trade_id": refTradeID,
		"od_status":    odStatus,
	})
	require.NoError(t, err)

	resp, err := c.httpClient.Post(c.baseURL+"/api/v1/customer/returns", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

// CheckStatus queries the purchase status endpoint.
func (c *TestClient) CheckStatus(t *testing.T, refTradeID string) (string, error) {
	body, err := json.Marshal(map[string]string{"ref_trade_id": refTradeID})
	require.NoError(t, err)

	resp, err := c.httpClient.Post(c.baseURL+"/api/v1/purchases/check", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if resp.StatusCode >= 400 {
		var errResp errorEnvelope
		_ = json.Unmarshal(raw, &errResp)
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, errResp.Error.Message)
	}

	var checkResp struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &checkResp))
	return checkResp.Data.Status, nil
}
