package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestDetectDirection(t *testing.T) {
	cases := []struct {
		text   string
		source string
		target string
		ok     bool
	}{
		{"おはようございます", "ja", "en", true},
		{"漢字だけ", "ja", "en", true},
		{"カタカナ", "ja", "en", true},
		{"good morning", "en", "ja", true},
		{"ab", "", "", false},
		{"12345 !?", "", "", false},
		{"", "", "", false},
	}
	for _, tc := range cases {
		source, target, ok := detectDirection(tc.text)
		if source != tc.source || target != tc.target || ok != tc.ok {
			t.Errorf("detectDirection(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tc.text, source, target, ok, tc.source, tc.target, tc.ok)
		}
	}
}

func TestTranslateSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Source != "ja" || req.Target != "en" {
			t.Errorf("direction = %s->%s, want ja->en", req.Source, req.Target)
		}
		json.NewEncoder(w).Encode(response{Code: 200, Text: "good morning"})
	}))
	defer server.Close()

	c := NewClient(server.URL, zap.NewNop())
	got, ok := c.Translate(context.Background(), "おはよう")
	if !ok || got != "good morning" {
		t.Errorf("Translate = (%q, %v), want (good morning, true)", got, ok)
	}
}

func TestTranslateFailuresAreSwallowed(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		c := NewClient(server.URL, zap.NewNop())
		if _, ok := c.Translate(context.Background(), "おはよう"); ok {
			t.Error("expected no translation on server error")
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1", zap.NewNop())
		if _, ok := c.Translate(context.Background(), "おはよう"); ok {
			t.Error("expected no translation when unreachable")
		}
	})

	t.Run("no api url configured", func(t *testing.T) {
		c := NewClient("", zap.NewNop())
		if _, ok := c.Translate(context.Background(), "おはよう"); ok {
			t.Error("expected no translation without an API URL")
		}
	})

	t.Run("empty response text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(response{Code: 200})
		}))
		defer server.Close()

		c := NewClient(server.URL, zap.NewNop())
		if _, ok := c.Translate(context.Background(), "おはよう"); ok {
			t.Error("expected no translation for empty text")
		}
	})
}
