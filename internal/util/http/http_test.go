package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jmylchreest/pixelize/internal/security"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); !strings.HasPrefix(got, UserAgentName+"/") {
			t.Errorf("User-Agent = %q", got)
		}
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("image-bytes"))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	data, err := Fetch(context.Background(), srv.URL+"/ok", FetchOptions{})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("Fetch() = %q", data)
	}

	if _, err := Fetch(context.Background(), srv.URL+"/missing", FetchOptions{}); err == nil {
		t.Error("Fetch() expected error for 404")
	}

	_, err = Fetch(context.Background(), srv.URL+"/big", FetchOptions{MaxBytes: 16})
	if !errors.Is(err, security.ErrSizeLimit) {
		t.Errorf("Fetch() over limit error = %v, want ErrSizeLimit", err)
	}
}
