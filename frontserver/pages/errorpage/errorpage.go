package errorpage

import (
	_ "embed"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/diamondburned/qaportal/frontserver/components/nav"
	"github.com/diamondburned/qaportal/frontserver/render"
	"github.com/diamondburned/qaportal/httperr"
)

var (
	//go:embed errorpage.html
	html string
	//go:embed errorpage.css
	css string
)

func init() {
	render.RegisterCSS(css)
}

var tmpl = render.BuildPage("errorpage", render.Page{
	Template: html,
	Components: map[string]render.Component{
		"nav": nav.Component,
	},
})

type renderCtx struct {
	render.CommonCtx
	Status string
	Errors [][]string
}

func RenderError(r *render.Request, err error) (render.Render, error) {
	var status = http.StatusText(httperr.ErrCode(err))

	return render.Render{
		Title: status,
		Body: tmpl.Render(renderCtx{
			CommonCtx: r.CommonCtx,
			Status:    status,
			Errors:    SplitError(err),
		}),
	}, nil
}

// SplitError splits the error into lines, then each line into its wrapped
// parts. Every part is capitalized and the last part of a line ends with a
// period.
func SplitError(err error) [][]string {
	var lines = strings.Split(err.Error(), "\n")
	var errors = make([][]string, len(lines))

	for i, line := range lines {
		var parts = strings.SplitAfter(line, ": ")

		for j, part := range parts {
			f, sz := utf8.DecodeRuneInString(part)
			if sz > 0 {
				part = string(unicode.ToUpper(f)) + part[sz:]
			}

			// Append a period at the end for formality.
			if j == len(parts)-1 && !strings.HasSuffix(part, ".") {
				part += "."
			}

			parts[j] = part
		}

		errors[i] = parts
	}

	return errors
}
