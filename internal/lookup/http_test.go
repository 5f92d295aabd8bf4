package lookup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const happyResponse = `[
  {
    "word": "happy",
    "meanings": [
      {
        "partOfSpeech": "adjective",
        "definitions": [
          {"definition": "Having a feeling arising from a consciousness of well-being.", "synonyms": ["Glad", "content"]},
          {"definition": "Having a feeling arising from a consciousness of well-being.", "synonyms": []}
        ],
        "synonyms": ["joyful", "happy", "over the moon", "glad", "x-ray"]
      }
    ]
  },
  {
    "word": "happy",
    "meanings": [
      {
        "partOfSpeech": "verb",
        "definitions": [{"definition": "To become happy.", "synonyms": ["cheer"]}],
        "synonyms": []
      }
    ]
  }
]`

func newTestClient(url string, retries uint) *HTTP {
	c := NewHTTP(url, time.Second, retries)
	c.InitialInterval = time.Millisecond
	return c
}

func TestHTTPLookupParsesEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/happy" {
			t.Errorf("path = %q, want /happy", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(happyResponse))
	}))
	defer srv.Close()

	entry, err := newTestClient(srv.URL, 0).Lookup(context.Background(), " Happy ")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if entry.Word != "happy" {
		t.Errorf("Word = %q, want happy", entry.Word)
	}
	if len(entry.Definitions) != 2 {
		t.Errorf("Definitions = %v, want 2 unique definitions", entry.Definitions)
	}
	want := []string{"glad", "content", "joyful", "cheer"}
	if len(entry.RelatedWords) != len(want) {
		t.Fatalf("RelatedWords = %v, want %v", entry.RelatedWords, want)
	}
	for i := range want {
		if entry.RelatedWords[i] != want[i] {
			t.Errorf("RelatedWords[%d] = %q, want %q", i, entry.RelatedWords[i], want[i])
		}
	}
}

func TestHTTPLookupNotFoundIsPermanent(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, `{"title":"No Definitions Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3).Lookup(context.Background(), "qwzx")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Lookup() error = %v, want ErrNotFound", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestHTTPLookupRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(happyResponse))
	}))
	defer srv.Close()

	entry, err := newTestClient(srv.URL, 2).Lookup(context.Background(), "happy")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if entry.Word != "happy" {
		t.Errorf("Word = %q, want happy", entry.Word)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestHTTPLookupGivesUpAfterRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 1).Lookup(context.Background(), "happy")
	var serr *StatusError
	if !errors.As(err, &serr) || serr.Code != http.StatusServiceUnavailable {
		t.Fatalf("Lookup() error = %v, want StatusError 503", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestHTTPLookupBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL, 2).Lookup(context.Background(), "happy"); err == nil {
		t.Fatal("Lookup() error = nil, want decode error")
	}
}

func TestHTTPLookupEmptyWord(t *testing.T) {
	if _, err := NewHTTP("", 0, 0).Lookup(context.Background(), "  "); !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup(\"\") error = %v, want ErrNotFound", err)
	}
}
