package middleware

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pkgAuth "github.com/virebo/lanthandel/internal/pkg/auth"
	testhelpers "github.com/virebo/lanthandel/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func customerEngine(parser TokenParser) (*gin.Engine, *uuid.UUID) {
	var seen uuid.UUID
	engine := gin.New()
	engine.GET("/protected", AuthRequired(parser), func(c *gin.Context) {
		seen = c.MustGet(UserIDContextKey).(uuid.UUID)
		c.Status(http.StatusOK)
	})
	return engine, &seen
}

func TestAuthRequiredMissingToken(t *testing.T) {
	engine, _ := customerEngine(testhelpers.TokenParserStub{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", recorder.Code)
	}
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	engine, _ := customerEngine(testhelpers.TokenParserStub{Err: errors.New("invalid auth token")})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "lanthandel_token", Value: "forfalskad"})
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", recorder.Code)
	}
}

func TestAuthRequiredRejectsSellerRole(t *testing.T) {
	engine, _ := customerEngine(testhelpers.TokenParserStub{
		Subject: "handlare@example.se", Role: pkgAuth.RoleSeller,
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "lanthandel_token", Value: "token"})
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", recorder.Code)
	}
}

func TestAuthRequiredRejectsBadSubject(t *testing.T) {
	engine, _ := customerEngine(testhelpers.TokenParserStub{
		Subject: "inte-ett-uuid", Role: pkgAuth.RoleCustomer,
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "lanthandel_token", Value: "token"})
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", recorder.Code)
	}
}

func TestAuthRequiredFromCookie(t *testing.T) {
	userID := uuid.New()
	engine, seen := customerEngine(testhelpers.TokenParserStub{
		Subject: userID.String(), Role: pkgAuth.RoleCustomer,
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "lanthandel_token", Value: "token"})
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	if *seen != userID {
		t.Fatalf("context user = %s, want %s", *seen, userID)
	}
}

func TestAuthRequiredFromBearerHeader(t *testing.T) {
	userID := uuid.New()
	var gotToken string
	engine, _ := customerEngine(testhelpers.TokenParserStub{
		ParseFn: func(token string) (string, pkgAuth.Role, error) {
			gotToken = token
			return userID.String(), pkgAuth.RoleCustomer, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer abc123")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	if gotToken != "abc123" {
		t.Fatalf("token = %q", gotToken)
	}
}

func TestSellerRequired(t *testing.T) {
	var seller string
	engine := gin.New()
	engine.GET("/seller", SellerRequired(testhelpers.TokenParserStub{
		Subject: "handlare@example.se", Role: pkgAuth.RoleSeller,
	}), func(c *gin.Context) {
		seller = c.MustGet(SellerContextKey).(string)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/seller", nil)
	req.AddCookie(&http.Cookie{Name: "lanthandel_seller_token", Value: "token"})
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	if seller != "handlare@example.se" {
		t.Fatalf("seller = %q", seller)
	}
}

func TestSellerRequiredRejectsCustomer(t *testing.T) {
	engine := gin.New()
	engine.GET("/seller", SellerRequired(testhelpers.TokenParserStub{
		Subject: uuid.New().String(), Role: pkgAuth.RoleCustomer,
	}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/seller", nil)
	req.AddCookie(&http.Cookie{Name: "lanthandel_seller_token", Value: "token"})
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", recorder.Code)
	}
}

func TestDecompressRequest(t *testing.T) {
	var received []byte
	engine := gin.New()
	engine.Use(DecompressRequest())
	engine.POST("/", func(c *gin.Context) {
		received, _ = io.ReadAll(c.Request.Body)
		c.Status(http.StatusOK)
	})

	var buf bytes.Buffer
	writer := gzip.NewWriter(&buf)
	writer.Write([]byte(`{"name":"Honung"}`))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Encoding", "gzip")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	if string(received) != `{"name":"Honung"}` {
		t.Fatalf("body = %q", received)
	}
}

func TestDecompressRequestBadPayload(t *testing.T) {
	engine := gin.New()
	engine.Use(DecompressRequest())
	engine.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("inte gzip")))
	req.Header.Set("Content-Encoding", "gzip")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	engine := gin.New()
	engine.Use(RequestLogger(logger))
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	logged := buf.String()
	for _, want := range []string{`"method":"GET"`, `"path":"/ping"`, `"status":200`} {
		if !bytes.Contains([]byte(logged), []byte(want)) {
			t.Fatalf("log line missing %s: %s", want, logged)
		}
	}
}
