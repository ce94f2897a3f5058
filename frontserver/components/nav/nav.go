package nav

import (
	_ "embed"

	"github.com/diamondburned/qaportal/frontserver/components/secondnav"
	"github.com/diamondburned/qaportal/frontserver/render"
)

//go:embed nav.html
var html string

//go:embed nav.css
var css string

func init() {
	render.RegisterCSS(css)
}

var Component = render.Component{
	Template: html,
	Components: map[string]render.Component{
		"secondnav": secondnav.Component,
	},
}
