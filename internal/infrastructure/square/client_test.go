package square

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:     baseURL,
		accessToken: "test-token",
		version:     "2023-10-18",
		httpClient:  &http.Client{Timeout: 5 * time.Second},
	}
}

func TestHTTPClient_ListLocations(t *testing.T) {
	t.Run("sends auth and version headers", func(t *testing.T) {
		var gotAuth, gotVersion string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotVersion = r.Header.Get("Square-Version")
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/locations", r.URL.Path)

			json.NewEncoder(w).Encode(map[string]any{
				"locations": []map[string]any{
					{"id": "L-1", "name": "Workshop", "status": "ACTIVE"},
					{"id": "L-2", "name": "Studio", "status": "INACTIVE"},
				},
			})
		}))
		defer srv.Close()

		locations, err := newTestClient(srv.URL).ListLocations(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "Bearer test-token", gotAuth)
		assert.Equal(t, "2023-10-18", gotVersion)
		require.Len(t, locations, 2)
		assert.Equal(t, "L-1", locations[0].ID)
		assert.Equal(t, "ACTIVE", locations[0].Status)
	})

	t.Run("missing access token fails before any request", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("request should not reach the server")
		}))
		defer srv.Close()

		client := newTestClient(srv.URL)
		client.accessToken = ""

		_, err := client.ListLocations(context.Background())
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func TestHTTPClient_CreatePayment(t *testing.T) {
	t.Run("posts charge and parses envelope", func(t *testing.T) {
		var gotReq CreatePaymentRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/payments", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

			json.NewEncoder(w).Encode(map[string]any{
				"payment": map[string]any{
					"id":     "pay-123",
					"status": "COMPLETED",
					"amount_money": map[string]any{
						"amount":   6118,
						"currency": "USD",
					},
				},
			})
		}))
		defer srv.Close()

		payment, err := newTestClient(srv.URL).CreatePayment(context.Background(), CreatePaymentRequest{
			SourceID:       "cnon:abc",
			IdempotencyKey: "idem-1",
			AmountMoney:    Money{Amount: 6118, Currency: "USD"},
			LocationID:     "L-1",
			Autocomplete:   true,
		})

		require.NoError(t, err)
		assert.Equal(t, "pay-123", payment.ID)
		assert.Equal(t, "COMPLETED", payment.Status)
		assert.Contains(t, string(payment.Raw), "amount_money")

		assert.Equal(t, "cnon:abc", gotReq.SourceID)
		assert.Equal(t, "idem-1", gotReq.IdempotencyKey)
		assert.Equal(t, int64(6118), gotReq.AmountMoney.Amount)
		assert.True(t, gotReq.Autocomplete)
	})

	t.Run("decodes upstream error envelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			json.NewEncoder(w).Encode(map[string]any{
				"errors": []map[string]any{
					{"category": "PAYMENT_METHOD_ERROR", "code": "CARD_DECLINED", "detail": "Card declined"},
				},
			})
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).CreatePayment(context.Background(), CreatePaymentRequest{
			SourceID:       "cnon:abc",
			IdempotencyKey: "idem-1",
			AmountMoney:    Money{Amount: 100, Currency: "USD"},
		})

		require.Error(t, err)
		apiErr, ok := IsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusPaymentRequired, apiErr.StatusCode)
		assert.Equal(t, "Card declined", apiErr.FirstDetail())
		assert.False(t, apiErr.IsRetryable())
	})

	t.Run("keeps raw body when error is not json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html>bad gateway</html>"))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).GetPayment(context.Background(), "pay-1")

		apiErr, ok := IsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		assert.Empty(t, apiErr.FirstDetail())
		assert.Contains(t, string(apiErr.Body), "bad gateway")
		assert.True(t, apiErr.IsRetryable())
	})
}

func TestHTTPClient_GetPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/pay-9", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"payment": map[string]any{"id": "pay-9", "status": "APPROVED"},
		})
	}))
	defer srv.Close()

	payment, err := newTestClient(srv.URL).GetPayment(context.Background(), "pay-9")

	require.NoError(t, err)
	assert.Equal(t, "pay-9", payment.ID)
	assert.Equal(t, "APPROVED", payment.Status)
}
