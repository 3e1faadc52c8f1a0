package models

import (
	"strings"
	"time"
)

// Post represents a blog post. AuthorID is serialized as "author" to match
// the REST contract, where a post carries its author's ID.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	AuthorID  uint      `gorm:"not null;index" json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostFields is the complete writable field set of a Post.
type PostFields struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  uint   `json:"author"`
}

// Trimmed returns a copy with surrounding whitespace removed from the title.
// Content is kept verbatim so embedded line breaks survive.
func (f PostFields) Trimmed() PostFields {
	f.Title = strings.TrimSpace(f.Title)
	return f
}

// Fields extracts the writable field set from a persisted post.
func (p Post) Fields() PostFields {
	return PostFields{Title: p.Title, Content: p.Content, Author: p.AuthorID}
}

// Apply overwrites every writable field of the post.
func (p *Post) Apply(f PostFields) {
	p.Title = f.Title
	p.Content = f.Content
	p.AuthorID = f.Author
}
