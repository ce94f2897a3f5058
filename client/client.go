package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/diamondburned/qaportal/httperr"
	"github.com/diamondburned/qaportal/qa"
	"github.com/pkg/errors"
)

// UserAgent is sent with every upstream request.
const UserAgent = "qaportal (+https://github.com/diamondburned/qaportal)"

// StatusCoder is an interface that ErrUnexpectedStatusCode implements.
type StatusCoder = httperr.StatusCoder

// ErrGetStatusCode gets the status code from error, or returns orCode if it
// can't get any.
func ErrGetStatusCode(err error, orCode int) int {
	return httperr.ErrCodeOr(err, orCode)
}

type ErrUnexpectedStatusCode struct {
	Code   int
	Body   string
	ErrMsg string
}

func (err ErrUnexpectedStatusCode) StatusCode() int {
	return err.Code
}

func (err ErrUnexpectedStatusCode) Error() string {
	var errstr = fmt.Sprintf("Unexpected status code %d", err.Code)
	switch {
	case err.ErrMsg != "":
		errstr += ": " + err.ErrMsg
	case err.Body != "":
		errstr += ", body: " + err.Body
	}

	return errstr
}

// Client is a single upstream host. It is safe to share across goroutines;
// WithContext returns a shallow copy bound to a context.
type Client struct {
	*http.Client
	host *url.URL
	ctx  context.Context

	// Retries is the number of times a failed request is sent again. Any
	// failure is retried the same way.
	Retries int
}

// NewClient makes a new client for the given base URL.
func NewClient(host string, cfg ClientConfig) (*Client, error) {
	u, err := url.Parse(host)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to parse host URL")
	}

	var client = &Client{
		Client: &http.Client{
			Timeout: cfg.Timeout(),
		},
		host:    u,
		ctx:     context.Background(),
		Retries: cfg.Retries,
	}

	return client, nil
}

// WithContext returns a copy of the client whose requests are bound to ctx.
func (c *Client) WithContext(ctx context.Context) *Client {
	cpy := *c
	cpy.ctx = ctx
	return &cpy
}

// Host returns the stringified URL.
func (c *Client) Host() string {
	return c.host.String()
}

// Endpoint returns the full URL of the given path.
func (c *Client) Endpoint(path string) string {
	return strings.TrimSuffix(c.Host(), "/") + path
}

// retry calls attempt with a fresh copy of the request up to c.Retries + 1
// times, until it succeeds. The request body, if any, must be replayable
// through GetBody, which http.NewRequest sets up for in-memory readers.
func (c *Client) retry(req *http.Request, attempt func(*http.Request) error) error {
	var attempts = c.Retries + 1
	var lastErr error

	for i := 0; i < attempts; i++ {
		q := req.Clone(c.ctx)

		if i > 0 && req.GetBody != nil {
			b, err := req.GetBody()
			if err != nil {
				return errors.Wrap(err, "Failed to rewind request body")
			}
			q.Body = b
		}

		if lastErr = attempt(q); lastErr == nil {
			return nil
		}

		// Don't bother retrying if the caller is gone.
		if ctxErr := c.ctx.Err(); ctxErr != nil {
			return errors.Wrap(ctxErr, "Request cancelled")
		}
	}

	return errors.Wrapf(lastErr, "Failed after %d attempts", attempts)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", UserAgent)

	r, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}

	if r.StatusCode < 200 || r.StatusCode > 299 {
		// Start reading the body for the error.
		defer r.Body.Close()

		var unexp = ErrUnexpectedStatusCode{Code: r.StatusCode}

		b, err := ioutil.ReadAll(r.Body)
		if err == nil {
			var errResp qa.ErrResponse
			if json.Unmarshal(b, &errResp); errResp.String() != "" {
				unexp.ErrMsg = errResp.String()
			} else {
				if len(b) > 100 {
					unexp.Body = string(b[:97]) + "..."
				} else {
					unexp.Body = string(b)
				}
			}
		}

		return nil, unexp
	}

	return r, nil
}

// DoJSON sends the request and decodes the JSON response into resp. A body
// that can't be read or decoded fails the attempt like a bad status does.
func (c *Client) DoJSON(req *http.Request, resp interface{}) error {
	return c.retry(req, func(req *http.Request) error {
		r, err := c.do(req)
		if err != nil {
			return err
		}
		defer r.Body.Close()

		b, err := ioutil.ReadAll(r.Body)
		if err != nil {
			return errors.Wrap(err, "Failed to read response")
		}

		if resp == nil {
			return nil
		}

		// Unmarshal validates the whole body before touching resp, so a
		// truncated body leaves resp as it was.
		if err := json.Unmarshal(b, resp); err != nil {
			return errors.Wrap(err, "Failed to decode response")
		}

		return nil
	})
}

func (c *Client) Post(path string, resp interface{}, v url.Values) error {
	r, err := http.NewRequest("POST", c.Endpoint(path), strings.NewReader(v.Encode()))
	if err != nil {
		return errors.Wrap(err, "Failed to create request")
	}
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Header.Set("Accept", "application/json")

	return c.DoJSON(r, resp)
}

func (c *Client) Get(path string, resp interface{}, v url.Values) error {
	var url = c.Endpoint(path)
	if len(v) > 0 {
		url += "?" + v.Encode()
	}

	r, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return errors.Wrap(err, "Failed to create request")
	}
	r.Header.Set("Accept", "application/json")

	return c.DoJSON(r, resp)
}
