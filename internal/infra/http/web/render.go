package web

import (
	"embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/*.html
var files embed.FS

var pages = template.Must(template.ParseFS(files, "templates/*.html"))

// Render escreve a página; erro de template vira 500 genérico,
// nunca meia-página.
func Render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("❌ Erro ao renderizar %s: %v", name, err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
	}
}
