package mtg

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDiskCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.Header.Get("User-Agent") != userAgent {
			t.Errorf("User-Agent = %q, want %q", r.Header.Get("User-Agent"), userAgent)
		}
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"value":42}`)
	}))
	defer srv.Close()

	client := srv.Client()
	client.Transport = &diskCache{base: client.Transport, dir: t.TempDir()}

	for i := range 2 {
		var data struct{ Value int }
		if err := jwget(context.Background(), client, srv.URL+"/value", &data); err != nil {
			t.Fatalf("jwget() #%d error: %v", i, err)
		}
		if data.Value != 42 {
			t.Errorf("jwget() #%d value = %d, want 42", i, data.Value)
		}
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1", hits)
	}

	// errors are not cached.
	for range 2 {
		var se *statusError
		err := jwget(context.Background(), client, srv.URL+"/missing", new(any))
		if !errors.As(err, &se) || se.Code != http.StatusNotFound {
			t.Errorf("jwget() error = %v, want a 404 status error", err)
		}
	}
	if hits != 3 {
		t.Errorf("server hit %d times, want 3", hits)
	}
}
