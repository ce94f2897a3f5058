package frontserver

import (
	"net/http"

	"github.com/diamondburned/qaportal/client"
	"github.com/diamondburned/qaportal/frontserver/pages/errorpage"
	"github.com/diamondburned/qaportal/frontserver/pages/home"
	"github.com/diamondburned/qaportal/frontserver/pages/login"
	"github.com/diamondburned/qaportal/frontserver/pages/question"
	"github.com/diamondburned/qaportal/frontserver/pages/register"
	"github.com/diamondburned/qaportal/frontserver/render"
	"github.com/pkg/errors"
)

// HomePath is where the root path redirects to.
const HomePath = "/home"

type FrontConfig struct {
	render.Config
	client.ClientConfig
	login.LoginConfig
}

func NewConfig() FrontConfig {
	return FrontConfig{
		Config:       render.NewConfig(),
		ClientConfig: client.NewConfig(),
		LoginConfig:  login.NewConfig(),
	}
}

func (c *FrontConfig) Validate() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}

	if err := c.ClientConfig.Validate(); err != nil {
		return err
	}

	if c.LoginConfig.Rate <= 0 {
		return errors.New("`loginRate' must be positive")
	}

	return nil
}

func New(cfg FrontConfig) (http.Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "Invalid config")
	}

	s, err := client.NewSession(cfg.ClientConfig)
	if err != nil {
		return nil, err
	}

	r := render.NewMux(s, cfg.Config)
	r.SetErrorRenderer(errorpage.RenderError)
	r.SetNotFound()

	r.Mux.Get("/", http.RedirectHandler(HomePath, http.StatusFound).ServeHTTP)
	r.Get(HomePath, home.Render)
	r.Get("/register", register.Render)
	r.Mount("/login", login.Mount(cfg.LoginConfig))
	r.Mount("/question/{id}", question.Mount)

	return r, nil
}
