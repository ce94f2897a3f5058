package secondnav

import (
	_ "embed"

	"github.com/diamondburned/qaportal/frontserver/render"
)

//go:embed secondnav.html
var html string

//go:embed secondnav.css
var css string

func init() {
	render.RegisterCSS(css)
}

var Component = render.Component{
	Template: html,
	Functions: map[string]interface{}{
		"themes": render.Themes,
	},
}
