package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/virebo/lanthandel/internal/domain/errors"
)

// SessionLineItem is a single checkout-session line. UnitAmount is tax
// inclusive, in 1/100 currency units.
type SessionLineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

// SessionRequest describes a hosted checkout session to create.
type SessionRequest struct {
	LineItems  []SessionLineItem
	SuccessURL string
	CancelURL  string
	OrderID    string
	UserID     string
}

// Session is the created provider session the customer is redirected to.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Client exposes operations against the payment provider.
type Client interface {
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error)
}

// HTTPClient implements Client via the provider's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	secretKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates an HTTP payment client with default timeout.
func NewHTTPClient(baseURL, secretKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payment url must be absolute")
	}
	return &HTTPClient{
		baseURL:   parsed,
		secretKey: secretKey,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateCheckoutSession creates a hosted payment session with the order and
// user identifiers attached as metadata.
func (c *HTTPClient) CreateCheckoutSession(ctx context.Context, sessionReq SessionRequest) (*Session, error) {
	endpoint := *c.baseURL
	endpoint.Path = "/v1/checkout/sessions"

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", sessionReq.SuccessURL)
	form.Set("cancel_url", sessionReq.CancelURL)
	form.Set("metadata[orderId]", sessionReq.OrderID)
	form.Set("metadata[userId]", sessionReq.UserID)
	for i, item := range sessionReq.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", "sek")
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(prefix+"[quantity]", strconv.FormatInt(item.Quantity, 10))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrPaymentProvider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domainErrors.ErrPaymentProvider, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("checkout session request failed",
			slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrPaymentProvider, resp.Status)
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domainErrors.ErrPaymentProvider, err)
	}
	if session.URL == "" {
		return nil, fmt.Errorf("%w: session without redirect url", domainErrors.ErrPaymentProvider)
	}
	return &session, nil
}
