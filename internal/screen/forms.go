package screen

import (
	"strconv"
	"strings"

	"inkwell/internal/models"
)

// PostForm holds post form values exactly as entered.
type PostForm struct {
	Title   string
	Content string
	Author  string
}

// PostFormFrom fills a form from an existing post.
func PostFormFrom(p models.Post) PostForm {
	return PostForm{Title: p.Title, Content: p.Content, Author: itoa(p.AuthorID)}
}

// Fields converts the form into a full post field set. It reports false when
// any required field is blank or the author is not a valid id.
func (f PostForm) Fields() (models.PostFields, bool) {
	if strings.TrimSpace(f.Title) == "" || strings.TrimSpace(f.Content) == "" {
		return models.PostFields{}, false
	}
	author, err := strconv.ParseUint(strings.TrimSpace(f.Author), 10, 64)
	if err != nil || author == 0 {
		return models.PostFields{}, false
	}
	return models.PostFields{Title: f.Title, Content: f.Content, Author: uint(author)}, true
}

// AuthorForm holds author form values exactly as entered.
type AuthorForm struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
}

// AuthorFormFrom fills a form from an existing author.
func AuthorFormFrom(a models.Author) AuthorForm {
	return AuthorForm{FirstName: a.FirstName, LastName: a.LastName, Email: a.Email, PhoneNumber: a.PhoneNumber}
}

// Fields converts the form into a full author field set. It reports false
// when any field is blank.
func (f AuthorForm) Fields() (models.AuthorFields, bool) {
	fields := models.AuthorFields{
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		Email:       f.Email,
		PhoneNumber: f.PhoneNumber,
	}
	trimmed := fields.Trimmed()
	if trimmed.FirstName == "" || trimmed.LastName == "" || trimmed.Email == "" || trimmed.PhoneNumber == "" {
		return models.AuthorFields{}, false
	}
	return fields, true
}
