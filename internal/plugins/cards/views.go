package cards

import (
	"context"
	"embed"
	"html/template"

	"github.com/a-h/templ"

	"github.com/keyxmakerx/wificard/internal/templates/layouts"
)

//go:embed html/*.html
var viewFiles embed.FS

// formFields are the inputs that can carry a validation message.
var formFields = []string{"brand_name", "ssid", "password", "background_color", "format", "scale"}

var views = template.Must(template.New("cards").Funcs(template.FuncMap{
	"fieldError": func(d designerData, field string) fieldError {
		return fieldError{Field: field, Message: d.Errors[field], OOB: d.OOB}
	},
}).ParseFS(viewFiles, "html/*.html"))

// designerData is what the designer templates render.
type designerData struct {
	*Preview

	// QRDataURI shadows Preview.QRDataURI so html/template accepts the
	// data: scheme.
	QRDataURI template.URL

	CSRFToken string

	// OOB marks secondary elements for htmx out-of-band swapping.
	OOB bool

	// PresetChosen re-renders the background input after a swatch click.
	PresetChosen bool

	Fields []string
}

type fieldError struct {
	Field   string
	Message string
	OOB     bool
}

func newDesignerData(ctx context.Context, p *Preview) designerData {
	return designerData{
		Preview: p,
		// The URI is built from base64 PNG bytes only.
		QRDataURI: template.URL(p.QRDataURI),
		CSRFToken: layouts.GetCSRFToken(ctx),
		Fields:    formFields,
	}
}

// DesignerPage renders the full designer page.
func DesignerPage(p *Preview) templ.Component {
	body := layouts.Template(views, "designer", func(ctx context.Context) any {
		return newDesignerData(ctx, p)
	})
	return layouts.Base("WiFi card designer", body)
}

// PreviewFragment renders the card preview for an htmx swap, plus
// out-of-band updates for the presets and field errors.
func PreviewFragment(p *Preview, presetChosen bool) templ.Component {
	return layouts.Template(views, "preview-fragment", func(ctx context.Context) any {
		d := newDesignerData(ctx, p)
		d.OOB = true
		d.PresetChosen = presetChosen
		return d
	})
}
