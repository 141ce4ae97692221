package model

// Contact is a single entry in the contact book.
// ID is assigned by the store on insert and never changes afterwards.
type Contact struct {
	ID    string `json:"id"`
	Nama  string `json:"nama"`
	Email string `json:"email"`
	NoHP  string `json:"nohp"`
}

// Student is an entry of the static list shown on the home page.
type Student struct {
	Nama  string
	Email string
}
