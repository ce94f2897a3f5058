package answer

import (
	_ "embed"

	"github.com/diamondburned/qaportal/frontserver/components/comment"
	"github.com/diamondburned/qaportal/frontserver/render"
	"github.com/diamondburned/qaportal/qa"
)

var (
	//go:embed answer.html
	html string
	//go:embed answer.css
	css string
)

func init() {
	render.RegisterCSS(css)
}

var Component = render.Component{
	Template: html,
	Components: map[string]render.Component{
		"comments": comment.ListComponent,
	},
}

// Data is an answer together with its comments.
type Data struct {
	Answer   qa.Answer
	Accepted bool
	Comments comment.List
}

// NewData wraps the answer of the given question. The answer is accepted if
// either side says so.
func NewData(q qa.Question, a qa.Answer) Data {
	return Data{
		Answer:   a,
		Accepted: a.CorrectAnswer || (q.CorrectAnswer != nil && *q.CorrectAnswer == a.ID),
	}
}
