// Package view renders the HTML pages of the application from embedded
// templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"

	"github.com/contactbook/backend/internal/model"
	"github.com/contactbook/backend/internal/validation"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const layout = "templates/layouts/main-layout.html"

// Page names.
const (
	PageIndex       = "index"
	PageAbout       = "about"
	PageContact     = "contact"
	PageAddContact  = "add-contact"
	PageEditContact = "edit-contact"
	PageDetail      = "detail"
)

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

var pages = []string{PageIndex, PageAbout, PageContact, PageAddContact, PageEditContact, PageDetail}

// Page is the data every template receives.
type Page struct {
	Title    string
	Success  []string
	Errors   []validation.FieldError
	Contact  *model.Contact
	Contacts []*model.Contact
	Students []model.Student
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the main layout.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, layout, path.Join("templates", name+".html"))
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes page name into w. Output is buffered so a template error
// leaves w untouched.
func (r *Renderer) Render(w io.Writer, name string, data *Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "main-layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// StaticHandler serves the embedded assets (css, images) from the root path.
// Directories are not listed.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(filesOnly{sub}))
}

// filesOnly hides directories so the file server answers 404 instead of an
// index listing.
type filesOnly struct {
	fs.FS
}

func (f filesOnly) Open(name string) (fs.File, error) {
	file, err := f.FS.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if st.IsDir() {
		_ = file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
