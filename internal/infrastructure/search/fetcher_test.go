package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"StockSentiment/internal/config"
	"StockSentiment/internal/domain"
)

func TestBuildSearchURL(t *testing.T) {
	t.Parallel()

	u, err := BuildSearchURL("https://search.naver.com/search.naver", map[string]string{"ie": "utf8", "sm": "nws_hty"}, "삼성전자 우")
	if err != nil {
		t.Fatalf("BuildSearchURL returned error: %v", err)
	}

	parsed, err := url.Parse(u)
	if err != nil {
		t.Fatalf("parse result: %v", err)
	}
	if parsed.Host != "search.naver.com" || parsed.Path != "/search.naver" {
		t.Fatalf("unexpected target: %s", u)
	}

	q := parsed.Query()
	if q.Get("query") != "삼성전자 우" {
		t.Fatalf("expected decoded query, got %q", q.Get("query"))
	}
	if q.Get("ie") != "utf8" || q.Get("sm") != "nws_hty" {
		t.Fatalf("fixed params missing: %s", parsed.RawQuery)
	}
}

func TestBuildSearchURLRejectsRelative(t *testing.T) {
	t.Parallel()

	if _, err := BuildSearchURL("/search", nil, "x"); err == nil {
		t.Fatalf("expected error for relative endpoint")
	}
}

func TestFetcherFetch(t *testing.T) {
	t.Parallel()

	var gotQuery, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`<a class="news_tit">A Corp profits surge</a>`))
	}))
	defer server.Close()

	f := NewFetcher(config.SearchConfig{Endpoint: server.URL + "/search.naver", UserAgent: "test-agent"}, server.Client(), nil)

	doc, err := f.Fetch(context.Background(), "A Corp")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if string(doc) != `<a class="news_tit">A Corp profits surge</a>` {
		t.Fatalf("unexpected body: %s", doc)
	}
	if gotQuery != "A Corp" {
		t.Fatalf("unexpected query: %q", gotQuery)
	}
	if gotUA != "test-agent" {
		t.Fatalf("unexpected user agent: %q", gotUA)
	}
}

func TestFetcherNonSuccessStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer server.Close()

	f := NewFetcher(config.SearchConfig{Endpoint: server.URL}, server.Client(), nil)

	_, err := f.Fetch(context.Background(), "A Corp")
	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fetchErr.Status != http.StatusForbidden {
		t.Fatalf("unexpected status: %d", fetchErr.Status)
	}
}

func TestFetcherConnectionRefused(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	f := NewFetcher(config.SearchConfig{Endpoint: endpoint}, nil, nil)

	_, err := f.Fetch(context.Background(), "A Corp")
	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fetchErr.Err == nil {
		t.Fatalf("expected wrapped transport error")
	}
}

func TestFetcherBlankQuery(t *testing.T) {
	t.Parallel()

	f := NewFetcher(config.SearchConfig{Endpoint: "http://127.0.0.1:1"}, nil, nil)
	if _, err := f.Fetch(context.Background(), "  "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
