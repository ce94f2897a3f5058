package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tdewolff/minify"
	"github.com/tdewolff/minify/css"
	"github.com/tdewolff/minify/html"
	"github.com/yuin/goldmark"
)

// runtime minifier
var minifier = func() (minifier *minify.M) {
	minifier = minify.New()
	minifier.AddFunc("text/css", css.Minify)
	minifier.AddFunc("text/html", html.Minify)
	return
}()

// markdown renders user-written descriptions. Raw HTML is escaped by default.
var markdown = goldmark.New()

var globalFns = template.FuncMap{
	// htmlTime formats the given time to input date value's format.
	"htmlTime": func(t time.Time) string {
		return t.Format("2006-01-02T15:04")
	},
	"humanizeNumber": func(number int64) string {
		return humanize.Comma(number)
	},
	"humanizeTime": func(t time.Time) string {
		if t.IsZero() {
			return "some time ago"
		}
		return humanize.Time(t)
	},
	"markdown": RenderMarkdown,
}

// RenderMarkdown renders the given markdown source into HTML. It falls back to
// the escaped source if rendering fails.
func RenderMarkdown(src string) template.HTML {
	var b strings.Builder

	if err := markdown.Convert([]byte(src), &b); err != nil {
		log.Println("Markdown error:", err)
		return template.HTML(template.HTMLEscapeString(src))
	}

	return template.HTML(b.String())
}

// Component is a template fragment that pages can include by name.
type Component struct {
	Template   string
	Components map[string]Component
	Functions  template.FuncMap
}

type Page struct {
	Template   string
	Components map[string]Component
	Functions  template.FuncMap
}

// prepareList is the list of templates to call prepare on.
var prepareList []*Template

func prepareAllTemplates() {
	for _, tmpl := range prepareList {
		tmpl.prepare()
	}
}

func BuildPage(n string, p Page) *Template {
	tmpl := &Template{
		name: n,
		page: p,
	}

	prepareList = append(prepareList, tmpl)

	return tmpl
}

type Template struct {
	*template.Template
	name string
	page Page
	once sync.Once
}

func (t *Template) prepare() {
	t.once.Do(t.do)
}

// flatten collects the component and all its children into dst. Components
// already in dst are kept.
func flatten(dst map[string]Component, fns template.FuncMap, components map[string]Component) {
	for n, component := range components {
		if _, ok := dst[n]; ok {
			continue
		}

		dst[n] = component

		// Only set into the map if we don't already have the function.
		for fn, f := range component.Functions {
			if _, ok := fns[fn]; !ok {
				fns[fn] = f
			}
		}

		flatten(dst, fns, component.Components)
	}
}

func (t *Template) do() {
	var components = map[string]Component{}
	var functions = template.FuncMap{}

	for n, fn := range t.page.Functions {
		functions[n] = fn
	}

	flatten(components, functions, t.page.Components)

	tmpl := template.New(t.name)
	tmpl = tmpl.Funcs(globalFns)
	tmpl = tmpl.Funcs(functions)
	tmpl = template.Must(tmpl.Parse(t.page.Template))

	// Parse all components' HTMLs.
	for n, component := range components {
		tmpl = template.Must(tmpl.Parse(
			fmt.Sprintf("{{ define %q }}%s{{ end }}", n, component.Template),
		))
	}

	t.Template = tmpl
}

// Render renders the template with the given argument into HTML.
func (t *Template) Render(v interface{}) template.HTML {
	t.prepare()

	var b bytes.Buffer

	if err := t.Execute(&b, v); err != nil {
		log.Println("Template error:", err)
		return template.HTML("<p>Failed to render this page.</p>")
	}

	return template.HTML(b.String())
}

// executeMinified executes the template and writes the minified HTML.
func executeMinified(w io.Writer, tmpl *template.Template, v interface{}) error {
	var b bytes.Buffer

	if err := tmpl.Execute(&b, v); err != nil {
		return err
	}

	return minifier.Minify("text/html", w, &b)
}

//go:embed style.css
var styleCSS string

var (
	componentsSrc    = []string{styleCSS}
	componentsCSS    = bytes.Buffer{}
	componentModTime = time.Now()
)

// RegisterCSS adds the stylesheet to the global CSS file, which can be located
// in /static/components.css. It must be called in init.
func RegisterCSS(src string) {
	componentsSrc = append(componentsSrc, src)
}

func initializeCSS() {
	for _, src := range componentsSrc {
		if err := minifier.Minify("text/css", &componentsCSS, strings.NewReader(src)); err != nil {
			log.Panicln("Failed to add minifying CSS:", err)
		}
	}
}

func componentsCSSHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")

	http.ServeContent(
		w, r, "components.css", componentModTime,
		bytes.NewReader(componentsCSS.Bytes()),
	)
}

//go:embed index.html
var indexHTML string

var initOnce sync.Once
var index *template.Template

func ensureInit() {
	initOnce.Do(func() {
		index = template.Must(template.New("index").Parse(indexHTML))

		initializeCSS()
		prepareAllTemplates()
	})
}
