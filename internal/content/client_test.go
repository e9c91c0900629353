package content_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blackwell-systems/brpctl/internal/content"
)

func TestClient_FetchChapter(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(jonah1))
	}))
	defer srv.Close()

	c := content.New(srv.URL+"/api/", "", time.Second)
	data, err := c.FetchChapter(context.Background(), 32, 1)
	if err != nil {
		t.Fatalf("FetchChapter: %v", err)
	}
	if string(data) != jonah1 {
		t.Error("body not returned verbatim")
	}
	if gotPath != "/api/chapter.php" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "book=32&chapter=1" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestClient_Version(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
	}))
	defer srv.Close()

	c := content.New(srv.URL, "tb", time.Second)
	if _, err := c.FetchChapter(context.Background(), 1, 2); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "book=1&chapter=2&ver=tb" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestClient_StatusErrors(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, content.ErrNotFound},
		{http.StatusTooManyRequests, content.ErrRateLimited},
		{http.StatusInternalServerError, nil},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", tc.status)
		}))
		_, err := content.New(srv.URL, "", time.Second).FetchChapter(context.Background(), 1, 1)
		srv.Close()
		if err == nil {
			t.Errorf("status %d: expected error", tc.status)
			continue
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Errorf("status %d: err = %v, want %v", tc.status, err, tc.want)
		}
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := content.New(srv.URL, "", 50*time.Millisecond).FetchChapter(context.Background(), 1, 1)
	if err == nil {
		t.Error("expected timeout error")
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := content.New(srv.URL, "", time.Second).FetchChapter(ctx, 1, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
