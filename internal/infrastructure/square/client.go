package square

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ceras-workshop/storefront-gateway/internal/config"
)

// Client is the upstream payment API surface the gateway depends on.
type Client interface {
	ListLocations(ctx context.Context) ([]Location, error)
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error)
	GetPayment(ctx context.Context, paymentID string) (*Payment, error)
}

type HTTPClient struct {
	baseURL     string
	accessToken string
	version     string
	httpClient  *http.Client
}

func NewClient(cfg config.SquareConfig) *HTTPClient {
	return &HTTPClient{
		baseURL:     cfg.BaseURL(),
		accessToken: cfg.AccessToken,
		version:     cfg.Version,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

func (c *HTTPClient) ListLocations(ctx context.Context) ([]Location, error) {
	url := fmt.Sprintf("%s/locations", c.baseURL)
	resp, err := sendRequest[any, listLocationsResponse](c, ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return resp.Locations, nil
}

func (c *HTTPClient) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	url := fmt.Sprintf("%s/payments", c.baseURL)
	resp, err := sendRequest[CreatePaymentRequest, paymentEnvelope](c, ctx, http.MethodPost, url, &req)
	if err != nil {
		return nil, err
	}
	return parsePayment(resp)
}

func (c *HTTPClient) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	url := fmt.Sprintf("%s/payments/%s", c.baseURL, paymentID)
	resp, err := sendRequest[any, paymentEnvelope](c, ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return parsePayment(resp)
}

func parsePayment(envelope *paymentEnvelope) (*Payment, error) {
	var core paymentCore
	if err := json.Unmarshal(envelope.Payment, &core); err != nil {
		return nil, fmt.Errorf("error decoding payment object: %w", err)
	}
	return &Payment{
		ID:     core.ID,
		Status: core.Status,
		Raw:    envelope.Payment,
	}, nil
}

func sendRequest[Req any, Resp any](c *HTTPClient, ctx context.Context, method, url string, reqBody *Req) (*Resp, error) {
	if c.accessToken == "" {
		return nil, ErrNotConfigured
	}

	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)
	httpReq.Header.Set("Square-Version", c.version)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		var envelope errorEnvelope
		// A non-JSON body still produces a usable APIError with the raw
		// body attached for logging.
		_ = json.Unmarshal(body, &envelope)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Errors:     envelope.Errors,
			Body:       body,
		}
	}

	var apiResp Resp
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &apiResp, nil
}
