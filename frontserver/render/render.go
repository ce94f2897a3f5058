package render

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/diamondburned/qaportal/client"
	"github.com/diamondburned/qaportal/httperr"
	"github.com/diamondburned/qaportal/qa"
	"github.com/go-chi/chi"
)

// Renderer represents a renderable page.
type Renderer = func(r *Request) (Render, error)

// ErrorRenderer represents a renderable page for errors.
type ErrorRenderer = func(r *Request, err error) (Render, error)

type Render struct {
	Title       string // og:title, <title>
	Description string // og:description

	Body template.HTML
}

// Empty is a blank page.
var Empty = Render{}

type Config struct {
	SiteName string `toml:"siteName"`
}

func NewConfig() Config {
	return Config{
		SiteName: "qa",
	}
}

func (c *Config) Validate() error {
	return nil
}

type renderCtx struct {
	Theme  Theme
	Render Render
	Config Config
}

func (r renderCtx) FormatTitle() string {
	if r.Render.Title == "" {
		return r.Config.SiteName
	}
	return fmt.Sprintf("%s - %s", r.Render.Title, r.Config.SiteName)
}

type Request struct {
	*http.Request
	Writer http.ResponseWriter
	CommonCtx
}

func (r *Request) Param(name string) string {
	return chi.URLParam(r.Request, name)
}

// IDParam returns the ID parameter from chi.
func (r *Request) IDParam() (int64, error) {
	i, err := strconv.ParseInt(r.Param("id"), 10, 64)
	if err != nil {
		return 0, qa.ErrInvalidID
	}
	return i, nil
}

// CommonCtx is embedded into every page's render context.
type CommonCtx struct {
	Config  Config
	Request *http.Request
	Theme   Theme
	// Session is bound to the request's context, so upstream calls are
	// cancelled once the client goes away.
	Session *client.Session
}

// IsPath returns true if the current request is on the given path. This is
// used for highlighting navigation links.
func (c CommonCtx) IsPath(path string) bool {
	return c.Request != nil && c.Request.URL.Path == path
}

type Mux struct {
	*chi.Mux
	session *client.Session
	cfg     Config
	errR    ErrorRenderer
}

func NewMux(session *client.Session, cfg Config) *Mux {
	ensureInit()

	r := chi.NewMux()
	r.Use(ThemeM)
	r.Post("/theme", handleSetTheme)
	r.Get("/static/components.css", componentsCSSHandler)

	return &Mux{r, session, cfg, nil}
}

func (m *Mux) SetErrorRenderer(r ErrorRenderer) {
	m.errR = r
}

// SetNotFound renders the error page for unknown routes.
func (m *Mux) SetNotFound() {
	m.Mux.NotFound(m.M(func(*Request) (Render, error) {
		return Empty, httperr.New(http.StatusNotFound, "page not found")
	}))
}

func (m *Mux) NewRequest(w http.ResponseWriter, r *http.Request) *Request {
	return &Request{
		Request: r,
		Writer:  w,
		CommonCtx: CommonCtx{
			Config:  m.cfg,
			Request: r,
			Theme:   GetTheme(r.Context()),
			Session: m.session.WithContext(r.Context()),
		},
	}
}

// M is the middleware wrapper.
func (m *Mux) M(render Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Write the proper headers.
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		var request = m.NewRequest(w, r)

		page, err := render(request)
		if err != nil {
			// Copy the status code if available. Else, fallback to 500.
			w.WriteHeader(httperr.ErrCode(err))

			// If there is no error renderer, then we just write the error down
			// in plain text.
			if m.errR == nil {
				fmt.Fprintf(w, "Error: %v", err)
				return
			}

			// Render the error page.
			page, err = m.errR(request, err)
			if err != nil {
				// This shouldn't error out, so we should log it.
				log.Println("Error rendering error page:", err)
				return
			}
		}

		// Don't render anything if an empty page is returned and there is no
		// error.
		if page == Empty {
			return
		}

		var renderCtx = renderCtx{
			Theme:  request.Theme,
			Render: page,
			Config: m.cfg,
		}

		if err := executeMinified(w, index, renderCtx); err != nil {
			log.Println("Error rendering index:", err)
		}
	}
}

func (m *Mux) Get(route string, r Renderer) {
	m.Mux.Get(route, m.M(r))
}

func (m *Mux) Post(route string, r Renderer) {
	m.Mux.Post(route, m.M(r))
}

// Muxer implements the interface that's passable to pages' mount functions.
type Muxer interface {
	M(Renderer) http.HandlerFunc
}

func (m *Mux) Mount(route string, mounter func(Muxer) http.Handler) {
	m.Mux.Mount(route, mounter(m))
}
