package web

import (
	"embed"
	"io/fs"
	"net/http"
	"path"

	"github.com/gofiber/template/html/v2"
	"github.com/rs/zerolog/log"
)

// TemplateExtension is the file extension of the page templates.
const TemplateExtension = ".gohtml"

// localTemplates is read instead of the embedded copy in dev mode.
const localTemplates = "./internal/web/templates"

var (
	//go:embed static/css/*.css
	embeddedStaticFiles embed.FS

	//go:embed templates/layouts/*.gohtml templates/settings/*.gohtml
	embeddedTemplates embed.FS
)

// templateEmbedFS roots the embedded templates at the 'templates' directory.
type templateEmbedFS struct {
	content embed.FS
}

// Open opens the named file from the 'templates' directory.
func (e templateEmbedFS) Open(name string) (fs.File, error) {
	return e.content.Open(path.Join("templates", name))
}

// newViews returns the template engine. Dev mode reads the templates from
// disk and parses them again on every render.
func newViews(devMode bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(templateEmbedFS{embeddedTemplates}), TemplateExtension)

	if devMode {
		engine = html.New(localTemplates, TemplateExtension)
		engine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	engine.AddFunc("add", func(a, b int) int {
		return a + b
	})

	return engine
}
