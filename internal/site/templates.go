package site

import (
	"embed"
	"html/template"

	"lobstertawar/internal/commons"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("page.html").
		Funcs(template.FuncMap{
			"rupiah": commons.FormatRupiah,
			"number": commons.FormatNumber,
		}).
		ParseFS(templateFS, "templates/*.html"),
)
