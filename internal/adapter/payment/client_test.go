package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainErrors "github.com/virebo/lanthandel/internal/domain/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func sessionRequest() SessionRequest {
	return SessionRequest{
		LineItems: []SessionLineItem{
			{Name: "Honung", UnitAmount: 12750, Quantity: 2},
			{Name: "Knäckebröd", UnitAmount: 3060, Quantity: 1},
		},
		SuccessURL: "http://localhost:3000/loader?next=my-orders",
		CancelURL:  "http://localhost:3000/cart",
		OrderID:    "order-1",
		UserID:     "user-1",
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	var captured *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		captured = r
		w.Write([]byte(`{"id":"cs_live_1","url":"https://pay.example/cs_live_1"}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "sk_test_123", testLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	session, err := client.CreateCheckoutSession(context.Background(), sessionRequest())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if session.ID != "cs_live_1" || session.URL != "https://pay.example/cs_live_1" {
		t.Fatalf("unexpected session %+v", session)
	}

	if captured.URL.Path != "/v1/checkout/sessions" {
		t.Fatalf("path = %q", captured.URL.Path)
	}
	if got := captured.Header.Get("Authorization"); got != "Bearer sk_test_123" {
		t.Fatalf("authorization = %q", got)
	}
	form := captured.PostForm
	checks := map[string]string{
		"mode":                                      "payment",
		"success_url":                               "http://localhost:3000/loader?next=my-orders",
		"cancel_url":                                "http://localhost:3000/cart",
		"metadata[orderId]":                         "order-1",
		"metadata[userId]":                          "user-1",
		"line_items[0][price_data][currency]":       "sek",
		"line_items[0][price_data][product_data][name]": "Honung",
		"line_items[0][price_data][unit_amount]":    "12750",
		"line_items[0][quantity]":                   "2",
		"line_items[1][price_data][unit_amount]":    "3060",
		"line_items[1][quantity]":                   "1",
	}
	for key, want := range checks {
		if got := form.Get(key); got != want {
			t.Errorf("form[%q] = %q, want %q", key, got, want)
		}
	}
}

func TestCreateCheckoutSessionProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid request"}}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "sk_test_123", testLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.CreateCheckoutSession(context.Background(), sessionRequest()); !errors.Is(err, domainErrors.ErrPaymentProvider) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestCreateCheckoutSessionMissingRedirect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"cs_live_1"}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "sk_test_123", testLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.CreateCheckoutSession(context.Background(), sessionRequest()); !errors.Is(err, domainErrors.ErrPaymentProvider) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestNewHTTPClientRejectsRelativeURL(t *testing.T) {
	if _, err := NewHTTPClient("/not-absolute", "sk_test_123", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}
