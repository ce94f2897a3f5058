package list

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diamondburned/qaportal/client"
	"github.com/diamondburned/qaportal/qa"
	"github.com/go-test/deep"
)

func newSession(t *testing.T, h http.HandlerFunc) *client.Session {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := client.NewConfig()
	cfg.APIBaseURL = srv.URL
	cfg.IdentityBaseURL = srv.URL
	cfg.Retries = 0

	if err := cfg.Validate(); err != nil {
		t.Fatal("Invalid config:", err)
	}

	s, err := client.NewSession(cfg)
	if err != nil {
		t.Fatal("Failed to create session:", err)
	}

	return s
}

func TestLoad(t *testing.T) {
	t.Run("Ready", func(t *testing.T) {
		var questions = []qa.Question{{ID: 1, UserID: "a", Title: "First"}}

		s := newSession(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(questions)
		})

		d := Load(s)
		if !d.Result.Ready() {
			t.Fatal("Unexpected state:", d.Result.State)
		}

		if eq := deep.Equal(d.Questions, questions); eq != nil {
			t.Fatal("Unexpected questions:", eq)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		s := newSession(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("[]"))
		})

		d := Load(s)
		if !d.Result.Ready() || len(d.Questions) != 0 {
			t.Fatalf("Unexpected data %#v", d)
		}
	})

	t.Run("Failed", func(t *testing.T) {
		s := newSession(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		d := Load(s)
		if !d.Result.Failed() || d.Result.Err == nil {
			t.Fatalf("Unexpected result %#v", d.Result)
		}
	})
}
