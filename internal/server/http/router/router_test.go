package router

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	pkgAuth "github.com/virebo/lanthandel/internal/pkg/auth"
	"github.com/virebo/lanthandel/internal/test/facadestub"
)

func testEngine() http.Handler {
	facade := facadestub.StorefrontFacadeStub{
		AuthFacadeStub: facadestub.AuthFacadeStub{
			ParseFn: func(token string) (string, pkgAuth.Role, error) {
				switch token {
				case "customer-token":
					return uuid.New().String(), pkgAuth.RoleCustomer, nil
				case "seller-token":
					return "handlare@example.se", pkgAuth.RoleSeller, nil
				default:
					return "", "", pkgAuth.ErrInvalidToken
				}
			},
		},
	}
	return Setup(facade, slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func request(engine http.Handler, method, path, cookie, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookie, Value: token})
	}
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func TestPublicRoutes(t *testing.T) {
	engine := testEngine()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/product/list"},
		{http.MethodGet, "/api/product/id/" + uuid.New().String()},
		{http.MethodPost, "/api/user/register"},
		{http.MethodPost, "/api/user/login"},
		{http.MethodPost, "/api/seller/login"},
		{http.MethodPost, "/webhook"},
	}
	for _, tc := range cases {
		if code := request(engine, tc.method, tc.path, "", "").Code; code == http.StatusUnauthorized || code == http.StatusNotFound {
			t.Errorf("%s %s: status %d", tc.method, tc.path, code)
		}
	}
}

func TestCustomerRoutesRequireSession(t *testing.T) {
	engine := testEngine()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/user/is-auth"},
		{http.MethodPost, "/api/cart/update"},
		{http.MethodPost, "/api/address/add"},
		{http.MethodGet, "/api/address/get"},
		{http.MethodPost, "/api/order/cod"},
		{http.MethodPost, "/api/order/stripe"},
		{http.MethodGet, "/api/order/user"},
		{http.MethodGet, "/api/order/status/" + uuid.New().String()},
	}
	for _, tc := range cases {
		if code := request(engine, tc.method, tc.path, "", "").Code; code != http.StatusUnauthorized {
			t.Errorf("%s %s without session: status %d, want 401", tc.method, tc.path, code)
		}
		if code := request(engine, tc.method, tc.path, "lanthandel_token", "customer-token").Code; code != http.StatusOK {
			t.Errorf("%s %s with session: status %d", tc.method, tc.path, code)
		}
	}
}

func TestSellerRoutesRequireSellerSession(t *testing.T) {
	engine := testEngine()
	orderID := uuid.New().String()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/seller/is-auth"},
		{http.MethodPost, "/api/product/add"},
		{http.MethodPost, "/api/product/stock"},
		{http.MethodGet, "/api/order/seller"},
		{http.MethodPut, "/api/order/" + orderID},
		{http.MethodPut, "/api/order/" + orderID + "/cod-status"},
		{http.MethodDelete, "/api/order/" + orderID},
	}
	for _, tc := range cases {
		if code := request(engine, tc.method, tc.path, "", "").Code; code != http.StatusUnauthorized {
			t.Errorf("%s %s without session: status %d, want 401", tc.method, tc.path, code)
		}
		if code := request(engine, tc.method, tc.path, "lanthandel_token", "customer-token").Code; code != http.StatusUnauthorized {
			t.Errorf("%s %s with customer session: status %d, want 401", tc.method, tc.path, code)
		}
	}

	if code := request(engine, http.MethodGet, "/api/order/seller", "lanthandel_seller_token", "seller-token").Code; code != http.StatusOK {
		t.Errorf("seller listing with seller session: status %d", code)
	}
}

func TestResponseCompression(t *testing.T) {
	engine := testEngine()

	req := httptest.NewRequest(http.MethodGet, "/api/product/list", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if got := recorder.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("content encoding = %q", got)
	}

	reader, err := gzip.NewReader(recorder.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	defer reader.Close()
	body, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var resp struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode body %q: %v", body, err)
	}
	if !resp.Success {
		t.Fatal("expected success envelope")
	}
}
