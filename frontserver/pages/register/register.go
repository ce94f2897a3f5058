package register

import (
	_ "embed"

	"github.com/diamondburned/qaportal/frontserver/components/nav"
	"github.com/diamondburned/qaportal/frontserver/render"
)

//go:embed register.html
var html string

var tmpl = render.BuildPage("register", render.Page{
	Template: html,
	Components: map[string]render.Component{
		"nav": nav.Component,
	},
})

// Render renders the registration placeholder. Accounts are managed by the
// identity provider.
func Render(r *render.Request) (render.Render, error) {
	return render.Render{
		Title: "Register",
		Body:  tmpl.Render(r.CommonCtx),
	}, nil
}
