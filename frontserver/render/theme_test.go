package render

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestParseTheme(t *testing.T) {
	for _, theme := range Themes() {
		if parsed := ParseTheme(theme.String()); parsed != theme {
			t.Errorf("Theme %q parsed into %q", theme, parsed)
		}
	}

	if theme := ParseTheme("solarized"); theme != DefaultTheme {
		t.Fatal("Unknown theme did not fall back to default:", theme)
	}
}

func TestThemeM(t *testing.T) {
	var got Theme
	h := ThemeM(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetTheme(r.Context())
	}))

	r := httptest.NewRequest("GET", "/home", nil)
	r.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})
	h.ServeHTTP(httptest.NewRecorder(), r)

	if got != DarkTheme {
		t.Fatal("Unexpected theme from cookie:", got)
	}
}

func TestSetTheme(t *testing.T) {
	form := url.Values{"theme": {"light"}}

	r := httptest.NewRequest("POST", "/theme", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Header.Set("Referer", "/question/4")

	w := httptest.NewRecorder()
	handleSetTheme(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatal("Unexpected status code:", w.Code)
	}

	if loc := w.Header().Get("Location"); loc != "/question/4" {
		t.Fatalf("Unexpected redirect %q", loc)
	}

	if c := w.Header().Get("Set-Cookie"); !strings.HasPrefix(c, "theme=light") {
		t.Fatalf("Unexpected cookie %q", c)
	}
}

func TestSetThemeReferer(t *testing.T) {
	var tests = []struct {
		referer string
		expect  string
	}{
		{"", "/home"},
		{"/question/4", "/question/4"},
		{"http://example.com/question/4?x=1", "/question/4?x=1"},
		{"https://evil.example/phish", "/home"},
		{"//evil.example/phish", "/home"},
		{"http://example.com//evil.example", "/home"},
		{"mailto:a@example.com", "/home"},
	}

	for _, test := range tests {
		r := httptest.NewRequest("POST", "/theme", strings.NewReader("theme=dark"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if test.referer != "" {
			r.Header.Set("Referer", test.referer)
		}

		w := httptest.NewRecorder()
		handleSetTheme(w, r)

		if loc := w.Header().Get("Location"); loc != test.expect {
			t.Errorf("Referer %q redirected to %q, expected %q", test.referer, loc, test.expect)
		}
	}
}
