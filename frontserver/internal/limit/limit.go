package limit

import (
	"net/http"
	"time"

	"github.com/didip/tollbooth/v6"
	"github.com/didip/tollbooth/v6/errors"
	"github.com/didip/tollbooth/v6/limiter"
)

// RateLimit limits the wrapped handler to n requests per second per client IP.
// Rejected requests are handed to the handler returned by rejected.
func RateLimit(n float64, rejected func(err error) http.Handler) func(http.Handler) http.Handler {
	l := tollbooth.NewLimiter(n, &limiter.ExpirableOptions{
		DefaultExpirationTTL: time.Hour,
	})
	l.SetIPLookups([]string{"X-Forwarded-For", "X-Real-IP", "RemoteAddr"})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := tollbooth.LimitByRequest(l, w, r); err != nil {
				rejected(rateErr{err}).ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type rateErr struct {
	*errors.HTTPError
}

func (r rateErr) Error() string {
	return "too many requests, slow down"
}

func (r rateErr) StatusCode() int {
	return r.HTTPError.StatusCode
}
