package layouts

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

//go:embed html/*.html
var files embed.FS

var baseTmpl = template.Must(template.ParseFS(files, "html/base.html"))

// baseData is the data the shell template renders.
type baseData struct {
	Title      string
	ActivePath string
	Body       template.HTML
}

// Base wraps body in the HTML document shell. The body is rendered first so
// an error in it aborts before any of the shell is written.
func Base(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := body.Render(ctx, &buf); err != nil {
			return err
		}
		return baseTmpl.ExecuteTemplate(w, "base", baseData{
			Title:      title,
			ActivePath: GetActivePath(ctx),
			// body was produced by html/template or templ and is already escaped.
			Body: template.HTML(buf.String()),
		})
	})
}

// Template adapts a named html/template to a templ.Component. The data
// function runs at render time so it can read layout values from ctx.
func Template(t *template.Template, name string, data func(ctx context.Context) any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, name, data(ctx))
	})
}
