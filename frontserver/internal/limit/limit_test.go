package limit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diamondburned/qaportal/httperr"
)

func TestRateLimit(t *testing.T) {
	var passed, rejected int

	h := RateLimit(1, func(err error) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rejected++
			w.WriteHeader(httperr.ErrCode(err))
		})
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		passed++
	}))

	var last *httptest.ResponseRecorder

	for i := 0; i < 5; i++ {
		r := httptest.NewRequest("POST", "/login", nil)
		last = httptest.NewRecorder()
		h.ServeHTTP(last, r)
	}

	if passed == 0 || rejected == 0 {
		t.Fatalf("Unexpected %d passed and %d rejected", passed, rejected)
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatal("Unexpected status code for rejected request:", last.Code)
	}
}
