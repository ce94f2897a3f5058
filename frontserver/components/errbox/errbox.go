package errbox

import (
	_ "embed"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/diamondburned/qaportal/frontserver/render"
)

//go:embed errbox.html
var html string

//go:embed errbox.css
var css string

func init() {
	render.RegisterCSS(css)
}

var Component = render.Component{
	Template: html,
	Functions: map[string]interface{}{
		"minifyError": MinifyError,
	},
}

// MinifyError returns the innermost part of a wrapped error message, capitalized
// and ending in a period.
func MinifyError(err error) string {
	if err == nil {
		return ""
	}

	var parts = strings.Split(err.Error(), ": ")
	var part = parts[len(parts)-1]

	// Capitalize the first letter.
	f, sz := utf8.DecodeRuneInString(part)
	if sz > 0 {
		part = string(unicode.ToUpper(f)) + part[sz:]
	}

	if !strings.HasSuffix(part, ".") {
		part += "."
	}

	return part
}
