package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"mastoride/internal/config"
	"mastoride/pkg/logger"
)

func proxyRouter(t *testing.T, upstreamURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: "stderr"})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	h := NewProxyHandler(&config.UpstreamConfig{BaseURL: upstreamURL, Timeout: 2 * time.Second}, log)
	r := gin.New()
	r.Any("/proxy/*path", h.Forward)
	return r
}

func TestProxyForwardsVerbatim(t *testing.T) {
	var gotMethod, gotPath, gotBody, gotContentType, gotCustom string

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotContentType = r.Header.Get("Content-Type")
		gotCustom = r.Header.Get("X-Custom")

		w.Header().Set("X-Upstream", "yes")
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"hello":"world"}`))
	}))
	defer upstream.Close()

	r := proxyRouter(t, upstream.URL)

	req := httptest.NewRequest(http.MethodPost, "/proxy/api/auth/login?x=1", strings.NewReader(`{"email":"a@b.c"}`))
	req.Header.Set("X-Custom", "val")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if gotMethod != http.MethodPost {
		t.Errorf("upstream method = %q, want POST", gotMethod)
	}
	if gotPath != "/api/auth/login?x=1" {
		t.Errorf("upstream path = %q", gotPath)
	}
	if gotBody != `{"email":"a@b.c"}` {
		t.Errorf("upstream body = %q", gotBody)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q, want default application/json", gotContentType)
	}
	if gotCustom != "val" {
		t.Errorf("custom header = %q, want relayed", gotCustom)
	}

	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d, want upstream status verbatim", w.Code)
	}
	if w.Body.String() != `{"hello":"world"}` {
		t.Errorf("body = %q, want upstream body verbatim", w.Body.String())
	}
	if w.Header().Get("X-Upstream") != "yes" {
		t.Error("upstream response headers should be relayed")
	}
}

func TestProxyKeepsExplicitContentType(t *testing.T) {
	var gotContentType string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
	}))
	defer upstream.Close()

	r := proxyRouter(t, upstream.URL)

	req := httptest.NewRequest(http.MethodPost, "/proxy/api/x", strings.NewReader("a=b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("content type = %q, want caller's value kept", gotContentType)
	}
}

func TestProxyUpstreamUnreachable(t *testing.T) {
	// A closed server guarantees a connection error.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	r := proxyRouter(t, upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/proxy/api/admin/users", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	want := `{"error":"Proxy error contacting backend"}`
	if w.Body.String() != want {
		t.Errorf("body = %q, want %q", w.Body.String(), want)
	}
}
