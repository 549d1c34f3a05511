package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AndreiMGagiu/TrustPass/internal/config"
	"github.com/AndreiMGagiu/TrustPass/internal/domain"
	"github.com/AndreiMGagiu/TrustPass/internal/infrastructure/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(baseURL string) *notify.Client {
	return notify.NewClient(config.NotifierConfig{
		BaseURL:     baseURL,
		ConnTimeout: 5 * time.Second,
	})
}

func TestNotifyStatus_Success(t *testing.T) {
	var gotMethod, gotPath, gotContentType, gotAuth string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
	}))
	defer server.Close()

	client := newClient(server.URL)
	err := client.NotifyStatus(context.Background(), "purchase-42", domain.StatusPaid)

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/purchase/purchase-42", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Empty(t, gotAuth)
	assert.Equal(t, map[string]string{"status": "paid"}, gotBody)
}

func TestNotifyStatus_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("maintenance"))
	}))
	defer server.Close()

	client := newClient(server.URL)
	err := client.NotifyStatus(context.Background(), "purchase-42", domain.StatusFailed)

	require.Error(t, err)
	notifyErr, ok := notify.IsNotificationError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, notifyErr.StatusCode)
	assert.Equal(t, "maintenance", notifyErr.Body)
	assert.Contains(t, err.Error(), "503")
}

func TestNotifyStatus_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newClient(server.URL)
	err := client.NotifyStatus(context.Background(), "purchase-42", domain.StatusPaid)

	require.Error(t, err)
	notifyErr, ok := notify.IsNotificationError(err)
	require.True(t, ok)
	assert.Zero(t, notifyErr.StatusCode)
	require.Error(t, notifyErr.Err)
}
