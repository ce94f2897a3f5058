package login

import (
	_ "embed"
	"log"
	"net/http"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/diamondburned/qaportal/frontserver/components/errbox"
	"github.com/diamondburned/qaportal/frontserver/components/nav"
	"github.com/diamondburned/qaportal/frontserver/internal/form"
	"github.com/diamondburned/qaportal/frontserver/internal/limit"
	"github.com/diamondburned/qaportal/frontserver/render"
	"github.com/diamondburned/qaportal/httperr"
	"github.com/diamondburned/qaportal/qa"
	"github.com/go-chi/chi"
)

var (
	//go:embed login.html
	html string
	//go:embed login.css
	css string
)

func init() {
	render.RegisterCSS(css)
}

var tmpl = render.BuildPage("login", render.Page{
	Template: html,
	Components: map[string]render.Component{
		"nav":    nav.Component,
		"errbox": errbox.Component,
	},
})

var ErrMissingCredentials = httperr.New(400, "username and password are required")

type LoginConfig struct {
	// Rate is the number of login attempts allowed per second per IP.
	Rate        float64           `toml:"loginRate"`
	MaxFormSize datasize.ByteSize `toml:"maxFormSize"`
}

func NewConfig() LoginConfig {
	return LoginConfig{
		Rate:        2,
		MaxFormSize: form.DefaultMaxSize,
	}
}

type loginForm struct {
	Username string `schema:"username"`
	Password string `schema:"password"`
}

type renderCtx struct {
	render.CommonCtx
	Username string
	// Token is only kept for this response.
	Token    qa.Token
	IssuedAt time.Time
	Result   render.Result
}

// ExpiresAt returns when the token expires, or a zero time.
func (r renderCtx) ExpiresAt() time.Time {
	return r.Token.ExpiresAt(r.IssuedAt)
}

type handler struct {
	decoder *form.Decoder
}

func Mount(cfg LoginConfig) func(render.Muxer) http.Handler {
	h := handler{
		decoder: form.NewDecoder(cfg.MaxFormSize),
	}

	return func(muxer render.Muxer) http.Handler {
		rejected := func(err error) http.Handler {
			return muxer.M(func(*render.Request) (render.Render, error) {
				return render.Empty, err
			})
		}

		mux := chi.NewMux()
		mux.Get("/", muxer.M(pageRender))
		mux.With(limit.RateLimit(cfg.Rate, rejected)).Post("/", muxer.M(h.handlePOST))
		return mux
	}
}

func pageRender(r *render.Request) (render.Render, error) {
	return render.Render{
		Title: "Log in",
		Body: tmpl.Render(renderCtx{
			CommonCtx: r.CommonCtx,
		}),
	}, nil
}

func (h handler) handlePOST(r *render.Request) (render.Render, error) {
	var f loginForm
	if err := h.decoder.Unmarshal(r.Writer, r.Request, &f); err != nil {
		return render.Empty, err
	}

	var renderCtx = renderCtx{
		CommonCtx: r.CommonCtx,
		Username:  f.Username,
		IssuedAt:  time.Now(),
	}

	var err error
	if f.Username == "" || f.Password == "" {
		err = ErrMissingCredentials
	} else {
		renderCtx.Token, err = r.Session.Token(f.Username, f.Password)
	}

	renderCtx.Result.Resolve(err)

	if err != nil {
		log.Printf("Login for %q failed: %v", f.Username, err)
		r.Writer.WriteHeader(httperr.ErrCodeOr(err, http.StatusBadGateway))
	}

	return render.Render{
		Title: "Log in",
		Body:  tmpl.Render(renderCtx),
	}, nil
}
