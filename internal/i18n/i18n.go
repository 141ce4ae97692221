// Package i18n holds the user-facing strings of the application in every
// supported locale.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	MsgNamaRequired = "validation.nama.required"
	MsgEmailInvalid = "validation.email.invalid"
	MsgNoHPInvalid  = "validation.nohp.invalid"

	MsgContactAdded   = "flash.contact.added"
	MsgContactUpdated = "flash.contact.updated"
	MsgContactDeleted = "flash.contact.deleted"

	MsgNotFound     = "error.not_found"
	MsgFetchFailed  = "error.fetch"
	MsgInsertFailed = "error.insert"
	MsgUpdateFailed = "error.update"
	MsgDeleteFailed = "error.delete"

	TitleHome    = "title.home"
	TitleAbout   = "title.about"
	TitleContact = "title.contact"
	TitleAdd     = "title.add"
	TitleEdit    = "title.edit"
	TitleDetail  = "title.detail"
)

// Default is the locale used when none is configured.
var Default = language.Indonesian

var messages = map[language.Tag]map[string]string{
	language.Indonesian: {
		MsgNamaRequired:   "Nama wajib diisi!",
		MsgEmailInvalid:   "Email tidak valid!",
		MsgNoHPInvalid:    "No HP tidak valid",
		MsgContactAdded:   "Data Contact berhasil ditambahkan!",
		MsgContactUpdated: "Data Contact berhasil diubah!",
		MsgContactDeleted: "Data Contact berhasil dihapus!",
		MsgNotFound:       "Contact Not Found.",
		MsgFetchFailed:    "Terjadi suatu kesalahan saat mengambil data.",
		MsgInsertFailed:   "Terjadi suatu kesalahan saat menambah data.",
		MsgUpdateFailed:   "Terjadi suatu kesalahan saat mengubah data.",
		MsgDeleteFailed:   "Terjadi suatu kesalahan saat menghapus data.",
		TitleHome:         "Halaman Mahasiswa",
		TitleAbout:        "Halaman About",
		TitleContact:      "Halaman Contact",
		TitleAdd:          "Form Tambah Data Contact",
		TitleEdit:         "Form Edit Data Contact",
		TitleDetail:       "Halaman Detail %s",
	},
	language.English: {
		MsgNamaRequired:   "Name is required!",
		MsgEmailInvalid:   "Email is not valid!",
		MsgNoHPInvalid:    "Phone number is not valid",
		MsgContactAdded:   "Contact added successfully!",
		MsgContactUpdated: "Contact updated successfully!",
		MsgContactDeleted: "Contact deleted successfully!",
		MsgNotFound:       "Contact Not Found.",
		MsgFetchFailed:    "Something went wrong while fetching the data.",
		MsgInsertFailed:   "Something went wrong while adding the data.",
		MsgUpdateFailed:   "Something went wrong while updating the data.",
		MsgDeleteFailed:   "Something went wrong while deleting the data.",
		TitleHome:         "Students",
		TitleAbout:        "About",
		TitleContact:      "Contacts",
		TitleAdd:          "Add Contact",
		TitleEdit:         "Edit Contact",
		TitleDetail:       "Contact Details %s",
	},
}

var cat = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(Default))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("i18n: %s/%s: %v", tag, key, err))
			}
		}
	}
	return b
}

// Translator formats messages for one locale.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Translator for locale ("id", "en", ...). Unsupported
// locales are an error.
func New(locale string) (*Translator, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("i18n: parse locale %q: %w", locale, err)
	}
	base, _ := tag.Base()
	for supported := range messages {
		if sb, _ := supported.Base(); sb == base {
			return &Translator{tag: supported, printer: message.NewPrinter(supported, message.Catalog(cat))}, nil
		}
	}
	return nil, fmt.Errorf("i18n: unsupported locale %q", locale)
}

// Must is New that panics on error.
func Must(locale string) *Translator {
	t, err := New(locale)
	if err != nil {
		panic(err)
	}
	return t
}

// Locale reports the resolved language tag.
func (t *Translator) Locale() language.Tag { return t.tag }

// T returns the message for key, formatted with args.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}
