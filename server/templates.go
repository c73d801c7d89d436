package server

import (
	"embed"
	"html/template"
)

//go:embed templ/*.html
var templateFS embed.FS

var (
	templateIndex = template.Must(template.ParseFS(templateFS, "templ/layout.html", "templ/index.html"))
	templateShow  = template.Must(template.ParseFS(templateFS, "templ/layout.html", "templ/asset.html"))
)
