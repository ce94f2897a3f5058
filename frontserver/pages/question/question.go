package question

import (
	_ "embed"
	"net/http"
	"unicode/utf8"

	"github.com/diamondburned/qaportal/frontserver/components/answer"
	"github.com/diamondburned/qaportal/frontserver/components/comment"
	"github.com/diamondburned/qaportal/frontserver/components/errbox"
	"github.com/diamondburned/qaportal/frontserver/components/nav"
	"github.com/diamondburned/qaportal/frontserver/render"
	"github.com/diamondburned/qaportal/qa"
	"github.com/go-chi/chi"
	"golang.org/x/sync/errgroup"
)

var (
	//go:embed question.html
	html string
	//go:embed question.css
	css string
)

func init() {
	render.RegisterCSS(css)
}

var tmpl = render.BuildPage("question", render.Page{
	Template: html,
	Components: map[string]render.Component{
		"nav":      nav.Component,
		"answer":   answer.Component,
		"comments": comment.ListComponent,
		"errbox":   errbox.Component,
	},
})

type renderCtx struct {
	render.CommonCtx
	Question      qa.Question
	Comments      comment.List
	Answers       []answer.Data
	AnswersResult render.Result
}

func Mount(muxer render.Muxer) http.Handler {
	mux := chi.NewMux()
	mux.Get("/", muxer.M(pageRender))
	return mux
}

func pageRender(r *render.Request) (render.Render, error) {
	id, err := r.IDParam()
	if err != nil {
		return render.Empty, err
	}

	var renderCtx = renderCtx{
		CommonCtx: r.CommonCtx,
	}

	// A failing question cancels the other fetches, since the page can't be
	// shown without it.
	g, ctx := errgroup.WithContext(r.Context())
	s := r.Session.WithContext(ctx)

	var answers []qa.Answer
	var answerComments []comment.List

	g.Go(func() (err error) {
		renderCtx.Question, err = s.Question(id)
		return
	})

	g.Go(func() error {
		renderCtx.Comments = comment.ForQuestion(s, id)
		return nil
	})

	g.Go(func() error {
		a, err := s.Answers(id)
		renderCtx.AnswersResult.Resolve(err)
		if err != nil {
			return nil
		}

		answers = a
		answerComments = make([]comment.List, len(a))

		var cg errgroup.Group
		for i := range a {
			i := i
			cg.Go(func() error {
				answerComments[i] = comment.ForAnswer(s, a[i].ID)
				return nil
			})
		}

		return cg.Wait()
	})

	if err := g.Wait(); err != nil {
		return render.Empty, err
	}

	renderCtx.Answers = make([]answer.Data, len(answers))
	for i, a := range answers {
		renderCtx.Answers[i] = answer.NewData(renderCtx.Question, a)
		renderCtx.Answers[i].Comments = answerComments[i]
	}

	return render.Render{
		Title:       renderCtx.Question.Title,
		Description: ellipsize(renderCtx.Question.Description),
		Body:        tmpl.Render(renderCtx),
	}, nil
}

// ellipsize cuts str down to 128 runes for the page description.
func ellipsize(str string) string {
	if utf8.RuneCountInString(str) <= 128 {
		return str
	}

	return string([]rune(str)[:125]) + "..."
}
