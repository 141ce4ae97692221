package view

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/contactbook/backend/internal/model"
	"github.com/contactbook/backend/internal/validation"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestRender_AllPages(t *testing.T) {
	r := newRenderer(t)
	c := &model.Contact{ID: "abc", Nama: "Budi", Email: "budi@example.com", NoHP: "081234567890"}
	data := &Page{
		Title:    "Judul",
		Contact:  c,
		Contacts: []*model.Contact{c},
		Students: []model.Student{{Nama: "Andi", Email: "andi@example.com"}},
	}

	for _, name := range pages {
		var buf bytes.Buffer
		if err := r.Render(&buf, name, data); err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if !strings.Contains(buf.String(), "<title>Judul</title>") {
			t.Errorf("%s: layout title missing", name)
		}
	}
}

func TestRender_ContactListShowsFlashAndRows(t *testing.T) {
	r := newRenderer(t)
	var buf bytes.Buffer
	err := r.Render(&buf, PageContact, &Page{
		Title:    "Halaman Contact",
		Success:  []string{"Data Contact berhasil ditambahkan!"},
		Contacts: []*model.Contact{{ID: "id-1", Nama: "Budi", Email: "budi@example.com"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Data Contact berhasil ditambahkan!", "Budi", `href="/contact/id-1"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestRender_FormErrorsAndEscaping(t *testing.T) {
	r := newRenderer(t)
	var buf bytes.Buffer
	err := r.Render(&buf, PageAddContact, &Page{
		Title:   "Form",
		Errors:  []validation.FieldError{{Field: "email", Message: "Email tidak valid!"}},
		Contact: &model.Contact{Nama: `<script>x</script>`},
	})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `data-field="email"`) {
		t.Error("expected rendered field error")
	}
	if strings.Contains(out, "<script>x</script>") {
		t.Error("submitted values must be escaped")
	}
}

func TestRender_UnknownPage(t *testing.T) {
	r := newRenderer(t)
	var buf bytes.Buffer
	if err := r.Render(&buf, "nope", &Page{}); err == nil {
		t.Error("expected error for unknown page")
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written on error")
	}
}

func TestStaticHandler_ServesCSS(t *testing.T) {
	rec := httptest.NewRecorder()
	StaticHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/css/style.css", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/css") {
		t.Errorf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
}

func TestStaticHandler_NoDirectoryListing(t *testing.T) {
	for _, target := range []string{"/css/", "/css"} {
		rec := httptest.NewRecorder()
		StaticHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", target, rec.Code)
		}
		if strings.Contains(rec.Body.String(), "style.css") {
			t.Errorf("%s: directory contents leaked: %s", target, rec.Body.String())
		}
	}
}
