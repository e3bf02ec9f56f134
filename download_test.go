package vellum

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDownloaderUserAgent(t *testing.T) {
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
	}))
	t.Cleanup(srv.Close)

	if _, err := NewDownloader("").Get(srv.URL); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if agent != defaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", agent, defaultUserAgent)
	}

	if _, err := NewDownloader("custom/1.0").Get(srv.URL); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if agent != "custom/1.0" {
		t.Errorf("User-Agent = %q, want custom override", agent)
	}
}

func TestDownloaderBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("payload"))
	}))
	t.Cleanup(srv.Close)

	data, err := NewDownloader("").Get(srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("Get = %q", data)
	}
}

func TestDownloaderStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	_, err := NewDownloader("").Get(srv.URL)
	var status statusError
	if !errors.As(err, &status) || int(status) != http.StatusNotFound {
		t.Errorf("Get: got %v, want statusError(404)", err)
	}
}
