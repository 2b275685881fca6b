package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"tick/internal/domains/todo/model/dto"
	"tick/shared/constant"
	"tick/shared/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// Data is everything the presentation layer receives: the page payload, the
// current user's name, and an optional one-shot message.
type Data struct {
	Username string
	Flash    string
	Todos    []dto.TodoResponse
}

type View struct {
	templates *template.Template
}

func New() (*View, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &View{templates: templates}, nil
}

// Render writes the named page. Template failures degrade to a plain 500;
// the data set itself never contains anything the requester may not see.
func (v *View) Render(w http.ResponseWriter, name string, data Data) {
	w.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeHTML)

	if err := v.templates.ExecuteTemplate(w, name, data); err != nil {
		logger.ErrorWithStack(err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
