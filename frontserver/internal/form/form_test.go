package form

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/c2h5oh/datasize"
	"github.com/diamondburned/qaportal/httperr"
)

type loginForm struct {
	Username string `schema:"username"`
	Password string `schema:"password"`
}

func TestUnmarshal(t *testing.T) {
	d := NewDecoder(0)

	body := url.Values{
		"username": {"a"},
		"password": {"b"},
		"remember": {"on"},
	}

	r := httptest.NewRequest("POST", "/login", strings.NewReader(body.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var f loginForm
	if err := d.Unmarshal(httptest.NewRecorder(), r, &f); err != nil {
		t.Fatal("Failed to unmarshal:", err)
	}

	if f.Username != "a" || f.Password != "b" {
		t.Fatalf("Unexpected form %#v", f)
	}
}

func TestUnmarshalTooLarge(t *testing.T) {
	d := NewDecoder(16 * datasize.B)

	body := url.Values{"username": {strings.Repeat("a", 64)}}

	r := httptest.NewRequest("POST", "/login", strings.NewReader(body.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var f loginForm
	err := d.Unmarshal(httptest.NewRecorder(), r, &f)
	if err == nil {
		t.Fatal("Unexpected nil error for oversized form")
	}

	if code := httperr.ErrCode(err); code != 413 {
		t.Fatalf("Unexpected status code %d for %v", code, err)
	}
}

func TestUnmarshalMalformed(t *testing.T) {
	d := NewDecoder(0)

	r := httptest.NewRequest("POST", "/login", strings.NewReader("username=%zz"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var f loginForm
	err := d.Unmarshal(httptest.NewRecorder(), r, &f)
	if err == nil {
		t.Fatal("Unexpected nil error for a malformed form")
	}

	if code := httperr.ErrCode(err); code != 400 {
		t.Fatalf("Unexpected status code %d for %v", code, err)
	}
}
