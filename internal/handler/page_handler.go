package handler

import (
	"net/http"

	"github.com/contactbook/backend/internal/i18n"
	"github.com/contactbook/backend/internal/model"
	"github.com/contactbook/backend/internal/view"
)

// students is the fixed list shown on the home page. It is not read from the
// contact store.
var students = []model.Student{
	{Nama: "Andry Pebrianto", Email: "andrypeb227@gmail.com"},
	{Nama: "Bagad Ihwalubin", Email: "bagadihwa@gmail.com"},
	{Nama: "Edai Cyahyono", Email: "cyahyadi@gmail.com"},
}

// PageHandler serves the static pages.
type PageHandler struct {
	renderer Renderer
	tr       *i18n.Translator
}

func NewPageHandler(renderer Renderer, tr *i18n.Translator) *PageHandler {
	return &PageHandler{renderer: renderer, tr: tr}
}

// Home handles GET /.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	render(w, h.renderer, view.PageIndex, &view.Page{
		Title:    h.tr.T(i18n.TitleHome),
		Students: students,
	})
}

// About handles GET /about.
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	render(w, h.renderer, view.PageAbout, &view.Page{
		Title: h.tr.T(i18n.TitleAbout),
	})
}
