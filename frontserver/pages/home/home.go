package home

import (
	_ "embed"

	"github.com/diamondburned/qaportal/frontserver/components/list"
	"github.com/diamondburned/qaportal/frontserver/components/nav"
	"github.com/diamondburned/qaportal/frontserver/render"
)

var (
	//go:embed home.html
	html string
	//go:embed home.css
	css string
)

func init() {
	render.RegisterCSS(css)
}

var tmpl = render.BuildPage("home", render.Page{
	Template: html,
	Components: map[string]render.Component{
		"nav":  nav.Component,
		"list": list.Component,
	},
})

type renderCtx struct {
	render.CommonCtx
	List list.Data
}

func Render(r *render.Request) (render.Render, error) {
	return render.Render{
		Title:       "Home",
		Description: "The latest questions.",
		Body: tmpl.Render(renderCtx{
			CommonCtx: r.CommonCtx,
			List:      list.Load(r.Session),
		}),
	}, nil
}
