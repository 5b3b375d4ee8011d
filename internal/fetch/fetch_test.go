package fetch

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/wwdctools/wwdc-parser/pkg/types"
)

func testConfig() types.FetchConfig {
	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 10 * time.Second},
		RateLimit:  1000,
	}
}

func TestFetchSendsBrowserHeaders(t *testing.T) {
	var gotUA, gotAccept string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		fmt.Fprint(w, "<html></html>")
	}))
	defer ts.Close()

	f := New(testConfig())
	if _, err := f.Fetch(context.Background(), ts.URL); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want default", gotUA)
	}
	if !strings.Contains(gotAccept, "text/html") {
		t.Errorf("Accept = %q, want text/html", gotAccept)
	}
}

func TestFetchHashesBody(t *testing.T) {
	const body = "<html><body>hello</body></html>"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer ts.Close()

	f := New(testConfig())
	res, err := f.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(res.Body) != body {
		t.Errorf("Body = %q, want %q", res.Body, body)
	}
	want := fmt.Sprintf("%x", sha256.Sum256([]byte(body)))
	if res.Hash != want {
		t.Errorf("Hash = %q, want %q", res.Hash, want)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", res.StatusCode)
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	f := New(testConfig())
	res, err := f.Fetch(context.Background(), ts.URL)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !strings.Contains(err.Error(), "http 404") {
		t.Errorf("error = %q, want http 404", err.Error())
	}
	if res == nil || res.StatusCode != http.StatusNotFound {
		t.Errorf("result should carry the status code, got %+v", res)
	}
}

func TestFetchCapsBodySize(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("a", 100))
	}))
	defer ts.Close()

	cfg := testConfig()
	cfg.MaxBodyBytes = 10
	f := New(cfg)
	res, err := f.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(res.Body) != 10 {
		t.Errorf("len(Body) = %d, want 10", len(res.Body))
	}
}

func TestFetchRedirectCap(t *testing.T) {
	var ts *httptest.Server
	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, ts.URL+r.URL.Path+"x", http.StatusFound)
	}))
	defer ts.Close()

	cfg := testConfig()
	cfg.MaxRedirects = 2
	f := New(cfg)
	if _, err := f.Fetch(context.Background(), ts.URL); err == nil {
		t.Fatal("expected error when redirect chain exceeds the cap")
	}
}

func TestWithDefaults(t *testing.T) {
	cfg := withDefaults(types.FetchConfig{})
	if cfg.Timeout != defaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, defaultTimeout)
	}
	if cfg.MaxBodyBytes != defaultMaxBodyBytes {
		t.Errorf("MaxBodyBytes = %d, want %d", cfg.MaxBodyBytes, defaultMaxBodyBytes)
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q, want default", cfg.UserAgent)
	}
	if cfg.RateLimit != defaultRateLimit {
		t.Errorf("RateLimit = %v, want %v", cfg.RateLimit, defaultRateLimit)
	}
	if cfg.MaxRedirects != defaultMaxRedirects {
		t.Errorf("MaxRedirects = %d, want %d", cfg.MaxRedirects, defaultMaxRedirects)
	}
}
