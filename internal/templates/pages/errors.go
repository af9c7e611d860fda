// Package pages holds full-page views that are not owned by a plugin.
package pages

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/a-h/templ"

	"github.com/keyxmakerx/wificard/internal/templates/layouts"
)

//go:embed html/*.html
var files embed.FS

var pageTmpl = template.Must(template.ParseFS(files, "html/*.html"))

type errorData struct {
	Code    int
	Status  string
	Message string
}

// ErrorPage renders a full error page inside the base layout.
func ErrorPage(code int, message string) templ.Component {
	status := http.StatusText(code)
	if status == "" {
		status = "Error"
	}
	body := layouts.Template(pageTmpl, "error", func(context.Context) any {
		return errorData{Code: code, Status: status, Message: message}
	})
	return layouts.Base(status, body)
}
