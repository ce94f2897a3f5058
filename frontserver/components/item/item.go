package item

import (
	_ "embed"
	"strconv"

	"github.com/diamondburned/qaportal/frontserver/render"
)

var (
	//go:embed item.html
	html string
	//go:embed item.css
	css string
)

func init() {
	render.RegisterCSS(css)
}

// Component displays a qa.Question it is given. It never fetches or changes
// anything; its only action is the link to the question.
var Component = render.Component{
	Template: html,
	Functions: map[string]interface{}{
		"questionURL": QuestionURL,
	},
}

// QuestionURL returns the route of the question with the given ID.
func QuestionURL(id int64) string {
	return "/question/" + strconv.FormatInt(id, 10)
}
