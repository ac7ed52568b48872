package views

import (
	"embed"
	"html/template"
	"log"
	"net/http"
	"time"
)

//go:embed templates/*.html
var files embed.FS

var pages = template.Must(template.ParseFS(files, "templates/*.html"))

// LoginData feeds the login page. Email survives a failed attempt, the
// password never does.
type LoginData struct {
	Error string
	Email string
}

type RegisterData struct {
	Errors  []string
	Success string
	Name    string
	Email   string
}

type ProfileData struct {
	Name      string
	Email     string
	CreatedAt time.Time
	Editing   bool
	Errors    []string
	Success   string
}

func Render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("ERROR [views.Render] failed to render %s: %v", name, err)
	}
}
