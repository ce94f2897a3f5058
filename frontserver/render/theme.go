package render

import (
	"context"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Theme uint8

const (
	LightTheme Theme = iota
	DarkTheme
	NordTheme

	themeLen
)

const DefaultTheme = NordTheme

var themeNames = [themeLen]string{
	LightTheme: "light",
	DarkTheme:  "dark",
	NordTheme:  "nord",
}

var themeURLs = [themeLen]string{
	LightTheme: "https://minicss.org/flavorFiles/mini-default.min.css",
	DarkTheme:  "https://minicss.org/flavorFiles/mini-dark.min.css",
	NordTheme:  "https://minicss.org/flavorFiles/mini-nord.min.css",
}

// Themes returns all known themes in order.
func Themes() []Theme {
	var themes = make([]Theme, themeLen)
	for i := range themes {
		themes[i] = Theme(i)
	}
	return themes
}

// ParseTheme returns the theme with the given name or the default theme.
func ParseTheme(name string) Theme {
	for i, n := range themeNames {
		if n == name {
			return Theme(i)
		}
	}
	return DefaultTheme
}

func (t Theme) String() string {
	if t >= themeLen {
		return DefaultTheme.String()
	}
	return themeNames[t]
}

func (t Theme) URL() string {
	if t >= themeLen {
		return DefaultTheme.URL()
	}
	return themeURLs[t]
}

type themeKey struct{}

// ThemeM puts the theme from the cookie into the request context.
func ThemeM(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var theme = DefaultTheme

		if c, err := r.Cookie("theme"); err == nil {
			theme = ParseTheme(c.Value)
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), themeKey{}, theme)))
	})
}

func GetTheme(ctx context.Context) Theme {
	if v, ok := ctx.Value(themeKey{}).(Theme); ok {
		return v
	}
	return DefaultTheme
}

func SetThemeCookie(w http.ResponseWriter, theme Theme) {
	http.SetCookie(w, &http.Cookie{
		Name:     "theme",
		Value:    theme.String(),
		Path:     "/",
		Expires:  time.Unix(math.MaxInt32, 0),
		SameSite: http.SameSiteLaxMode,
	})
}

func handleSetTheme(w http.ResponseWriter, r *http.Request) {
	SetThemeCookie(w, ParseTheme(r.FormValue("theme")))

	var back = localReferer(r)
	if back == "" {
		back = "/home"
	}

	// https://developer.mozilla.org/en-US/docs/Web/HTTP/Redirections
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// localReferer returns the path and query of the Referer if it points to this
// host, or an empty string otherwise.
func localReferer(r *http.Request) string {
	u, err := url.Parse(r.Referer())
	if err != nil || u.Host != "" && u.Host != r.Host {
		return ""
	}

	// "//host" would be followed as another host.
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return ""
	}

	return u.RequestURI()
}
