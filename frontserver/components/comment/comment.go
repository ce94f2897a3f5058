package comment

import (
	_ "embed"

	"github.com/diamondburned/qaportal/client"
	"github.com/diamondburned/qaportal/frontserver/components/errbox"
	"github.com/diamondburned/qaportal/frontserver/render"
	"github.com/diamondburned/qaportal/qa"
)

var (
	//go:embed comment.html
	commentHTML string
	//go:embed comments.html
	commentsHTML string
	//go:embed comment.css
	css string
)

func init() {
	render.RegisterCSS(css)
}

// Component renders a single qa.Comment.
var Component = render.Component{
	Template: commentHTML,
}

// ListComponent renders a List.
var ListComponent = render.Component{
	Template: commentsHTML,
	Components: map[string]render.Component{
		"comment": Component,
		"errbox":  errbox.Component,
	},
}

// List is the comments under a question or an answer.
type List struct {
	Comments []qa.Comment
	Result   render.Result
}

// ForQuestion fetches the comments directly under the question.
func ForQuestion(s *client.Session, questionID int64) (l List) {
	c, err := s.QuestionComments(questionID)
	l.Comments = c
	l.Result.Resolve(err)
	return
}

// ForAnswer fetches the comments under the answer.
func ForAnswer(s *client.Session, answerID int64) (l List) {
	c, err := s.AnswerComments(answerID)
	l.Comments = c
	l.Result.Resolve(err)
	return
}
