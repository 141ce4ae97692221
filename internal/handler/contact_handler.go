package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/contactbook/backend/internal/i18n"
	"github.com/contactbook/backend/internal/model"
	"github.com/contactbook/backend/internal/service"
	"github.com/contactbook/backend/internal/validation"
	"github.com/contactbook/backend/internal/view"
	"github.com/contactbook/backend/pkg/session"
)

// flashSuccess is the flash category shown on the contact list.
const flashSuccess = "success"

// Renderer renders a named page.
type Renderer interface {
	Render(w io.Writer, name string, data *view.Page) error
}

// ContactHandler serves the contact pages and form submissions.
type ContactHandler struct {
	contactService service.ContactService
	renderer       Renderer
	validator      *validation.Validator
	tr             *i18n.Translator
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(contactService service.ContactService, renderer Renderer, validator *validation.Validator, tr *i18n.Translator) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		renderer:       renderer,
		validator:      validator,
		tr:             tr,
	}
}

// List handles GET /contact.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contactService.List(r.Context())
	if err != nil {
		h.storeError(w, r, err, i18n.MsgFetchFailed)
		return
	}

	render(w, h.renderer, view.PageContact, &view.Page{
		Title:    h.tr.T(i18n.TitleContact),
		Contacts: contacts,
		Success:  takeFlashes(r, flashSuccess),
	})
}

// AddForm handles GET /contact/add.
func (h *ContactHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	render(w, h.renderer, view.PageAddContact, &view.Page{
		Title: h.tr.T(i18n.TitleAdd),
	})
}

// Create handles POST /contact.
// An invalid submission re-renders the form with the errors and the
// submitted values; nothing is stored.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	contact, ok := parseContactForm(w, r, "")
	if !ok {
		return
	}

	if errs := h.validator.Contact(formOf(contact)); len(errs) > 0 {
		render(w, h.renderer, view.PageAddContact, &view.Page{
			Title:   h.tr.T(i18n.TitleAdd),
			Errors:  errs,
			Contact: contact,
		})
		return
	}

	if _, err := h.contactService.Create(r.Context(), contact); err != nil {
		h.storeError(w, r, err, i18n.MsgInsertFailed)
		return
	}

	addFlash(r, flashSuccess, h.tr.T(i18n.MsgContactAdded))
	http.Redirect(w, r, "/contact", http.StatusFound)
}

// EditForm handles GET /contact/edit/{id}.
func (h *ContactHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	contact, err := h.contactService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, r, err, i18n.MsgFetchFailed)
		return
	}

	render(w, h.renderer, view.PageEditContact, &view.Page{
		Title:   h.tr.T(i18n.TitleEdit),
		Contact: contact,
	})
}

// Update handles PUT /contact/{id}.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	contact, ok := parseContactForm(w, r, id)
	if !ok {
		return
	}

	if errs := h.validator.Contact(formOf(contact)); len(errs) > 0 {
		render(w, h.renderer, view.PageEditContact, &view.Page{
			Title:   h.tr.T(i18n.TitleEdit),
			Errors:  errs,
			Contact: contact,
		})
		return
	}

	if _, err := h.contactService.Update(r.Context(), id, contact); err != nil {
		h.storeError(w, r, err, i18n.MsgUpdateFailed)
		return
	}

	addFlash(r, flashSuccess, h.tr.T(i18n.MsgContactUpdated))
	http.Redirect(w, r, "/contact", http.StatusFound)
}

// Detail handles GET /contact/{id}.
func (h *ContactHandler) Detail(w http.ResponseWriter, r *http.Request) {
	contact, err := h.contactService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, r, err, i18n.MsgFetchFailed)
		return
	}

	render(w, h.renderer, view.PageDetail, &view.Page{
		Title:   h.tr.T(i18n.TitleDetail, contact.Nama),
		Contact: contact,
	})
}

// Delete handles DELETE /contact/{id}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.contactService.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.storeError(w, r, err, i18n.MsgDeleteFailed)
		return
	}

	addFlash(r, flashSuccess, h.tr.T(i18n.MsgContactDeleted))
	http.Redirect(w, r, "/contact", http.StatusFound)
}

func (h *ContactHandler) storeError(w http.ResponseWriter, r *http.Request, err error, fallbackKey string) {
	writeStoreError(w, r, err, h.tr.T(i18n.MsgNotFound), h.tr.T(fallbackKey))
}

// parseContactForm reads the urlencoded body into a normalized contact with
// the given id. On a malformed body it writes 400 and returns false.
func parseContactForm(w http.ResponseWriter, r *http.Request, id string) (*model.Contact, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return nil, false
	}
	c := &model.Contact{
		ID:    id,
		Nama:  r.PostForm.Get("nama"),
		Email: r.PostForm.Get("email"),
		NoHP:  r.PostForm.Get("nohp"),
	}
	service.Normalize(c)
	return c, true
}

func formOf(c *model.Contact) validation.ContactForm {
	return validation.ContactForm{Nama: c.Nama, Email: c.Email, NoHP: c.NoHP}
}

// render writes page with status 200, or 500 if the template fails.
func render(w http.ResponseWriter, renderer Renderer, page string, data *view.Page) {
	var buf strings.Builder
	if err := renderer.Render(&buf, page, data); err != nil {
		slog.Error("render page", "page", page, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, buf.String())
}

func addFlash(r *http.Request, category, msg string) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		slog.Warn("flash dropped: no session in context", "category", category)
		return
	}
	s.AddFlash(category, msg)
}

func takeFlashes(r *http.Request, category string) []string {
	s, ok := session.FromContext(r.Context())
	if !ok {
		return nil
	}
	return s.Flashes(category)
}
