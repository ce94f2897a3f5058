package list

import (
	_ "embed"

	"github.com/diamondburned/qaportal/client"
	"github.com/diamondburned/qaportal/frontserver/components/errbox"
	"github.com/diamondburned/qaportal/frontserver/components/item"
	"github.com/diamondburned/qaportal/frontserver/render"
	"github.com/diamondburned/qaportal/qa"
)

var (
	//go:embed list.html
	html string
	//go:embed list.css
	css string
)

func init() {
	render.RegisterCSS(css)
}

var Component = render.Component{
	Template: html,
	Components: map[string]render.Component{
		"item":   item.Component,
		"errbox": errbox.Component,
	},
}

// Data is the list's state. The list owns the questions; each item is handed
// a copy.
type Data struct {
	Questions []qa.Question
	Result    render.Result
}

// Load fetches the first page of questions.
func Load(s *client.Session) (d Data) {
	q, err := s.ListQuestions()
	d.Questions = q
	d.Result.Resolve(err)
	return
}
