package adslibrary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"adscribe/internal/testsupport"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := testsupport.NewConfig(t)
	cfg.AdsLibrary.BaseURL = srv.URL
	return NewClientWithHTTP(cfg, srv.Client())
}

func TestResolvePageIDDirect(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected for a direct page id")
	})

	id, err := client.ResolvePageID(context.Background(), PageRef{PageID: "123456789"})
	if err != nil {
		t.Fatalf("ResolvePageID: %v", err)
	}
	if id != "123456789" {
		t.Fatalf("id = %q", id)
	}
}

func TestResolvePageIDBySearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("q") != "acmetools" {
			t.Errorf("unexpected search term: %q", query.Get("q"))
		}
		if query.Get("search_type") != "keyword_unordered" {
			t.Errorf("unexpected search type: %q", query.Get("search_type"))
		}
		w.Write([]byte(`<a href="/?view_all_page_id=424242424242">Acme</a>`))
	})

	id, err := client.ResolvePageID(context.Background(), PageRef{SearchName: "acmetools"})
	if err != nil {
		t.Fatalf("ResolvePageID: %v", err)
	}
	if id != "424242424242" {
		t.Fatalf("id = %q", id)
	}
}

func TestResolvePageIDSearchFallsBackToPageIDField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"page_id":"777888999000"}`))
	})

	id, err := client.ResolvePageID(context.Background(), PageRef{SearchName: "acmetools"})
	if err != nil {
		t.Fatalf("ResolvePageID: %v", err)
	}
	if id != "777888999000" {
		t.Fatalf("id = %q", id)
	}
}

func TestResolvePageIDNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>no results</html>"))
	})

	if _, err := client.ResolvePageID(context.Background(), PageRef{SearchName: "ghost"}); err == nil {
		t.Fatal("expected error when search yields no page")
	}
}

func TestFetchVideoAdsPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("view_all_page_id") != "123456789" {
			t.Errorf("unexpected page id: %q", query.Get("view_all_page_id"))
		}
		if query.Get("media_type") != "video" {
			t.Errorf("unexpected media type: %q", query.Get("media_type"))
		}
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
			t.Errorf("expected browser user agent, got %q", ua)
		}
		w.Write([]byte("<html>ads</html>"))
	})

	html, err := client.FetchVideoAdsPage(context.Background(), "123456789")
	if err != nil {
		t.Fatalf("FetchVideoAdsPage: %v", err)
	}
	if html != "<html>ads</html>" {
		t.Fatalf("html = %q", html)
	}
}

func TestFetchSurfacesHTTPErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	if _, err := client.FetchVideoAdsPage(context.Background(), "123456789"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
