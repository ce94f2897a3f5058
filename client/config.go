package client

import (
	"net/url"
	"time"

	"github.com/diamondburned/duration"
	"github.com/pkg/errors"
)

// ClientConfig is the upstream configuration shared by every session.
type ClientConfig struct {
	APIBaseURL      string `toml:"apiBaseUrl"`
	IdentityBaseURL string `toml:"identityBaseUrl"`
	ClientID        string `toml:"clientID"`
	// Retries is the number of retries after the first attempt.
	Retries        int    `toml:"retries"`
	RequestTimeout string `toml:"requestTimeout"`

	requestTimeout time.Duration
}

func NewConfig() ClientConfig {
	return ClientConfig{
		APIBaseURL:      "http://localhost:8080",
		IdentityBaseURL: "http://localhost:8090/auth/realms/master/protocol/openid-connect/token",
		ClientID:        "portal-ui",
		Retries:         3,
		RequestTimeout:  "10s",
	}
}

func (c *ClientConfig) Validate() error {
	if err := validURL(c.APIBaseURL); err != nil {
		return errors.Wrap(err, "invalid `apiBaseUrl'")
	}

	if err := validURL(c.IdentityBaseURL); err != nil {
		return errors.Wrap(err, "invalid `identityBaseUrl'")
	}

	if c.ClientID == "" {
		return errors.New("missing `clientID' value")
	}

	if c.Retries < 0 {
		return errors.New("`retries' must not be negative")
	}

	d, err := duration.ParseDuration(c.RequestTimeout)
	if err != nil {
		return errors.Wrap(err, "invalid request timeout")
	}
	c.requestTimeout = time.Duration(d)

	return nil
}

// Timeout returns the parsed request timeout. It is only valid after Validate.
func (c ClientConfig) Timeout() time.Duration {
	return c.requestTimeout
}

func validURL(s string) error {
	if s == "" {
		return errors.New("empty URL")
	}

	u, err := url.Parse(s)
	if err != nil {
		return err
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Errorf("unsupported scheme %q", u.Scheme)
	}

	return nil
}
