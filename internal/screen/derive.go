package screen

import (
	"strings"

	"inkwell/internal/models"
)

// Preview lengths for post content on list pages.
const (
	PostListPreviewLen     = 200
	AuthorDetailPreviewLen = 150
)

// UnknownAuthor is shown when a post's author is missing from the fetched authors.
const UnknownAuthor = "Unknown Author"

// AuthorName resolves an author id against authors, falling back to UnknownAuthor.
func AuthorName(authors []models.Author, id uint) string {
	for _, a := range authors {
		if a.ID == id {
			return a.FullName()
		}
	}
	return UnknownAuthor
}

// Truncate shortens s to its first n characters plus "..." when s is longer
// than n characters. Strings of exactly n characters are returned unchanged.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// Paragraphs splits post content on line breaks, one paragraph per line.
func Paragraphs(content string) []string {
	return strings.Split(content, "\n")
}

// PostsByAuthor returns the posts whose author equals authorID, in their original order.
func PostsByAuthor(posts []models.Post, authorID uint) []models.Post {
	out := make([]models.Post, 0)
	for _, p := range posts {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out
}
