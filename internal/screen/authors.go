package screen

import (
	"context"

	"inkwell/internal/models"
)

// User-facing messages for the author screens.
const (
	MsgFetchAuthorData         = "Failed to fetch author data. Please try again later."
	MsgDeleteAuthor            = "Failed to delete author. Please try again."
	MsgCreateAuthor            = "Failed to create author. Please check your input and try again."
	MsgUpdateAuthor            = "Failed to update author. Please check your input and try again."
	MsgAuthorCreated           = "Author created successfully!"
	MsgAuthorUpdated           = "Author updated successfully!"
	PromptDeleteAuthor         = "Are you sure you want to delete this author?"
	PromptDeleteAuthorAndPosts = "Are you sure you want to delete this author? This will also delete all their posts."
)

const (
	authorsPath        = "/authors"
	authorListScreen   = "author_list"
	authorDetailScreen = "author_detail"
	createAuthorScreen = "create_author"
	editAuthorScreen   = "edit_author"
)

// AuthorList shows every author.
type AuthorList struct {
	base
	authors AuthorCollection

	Authors []models.Author
}

func NewAuthorList(authors AuthorCollection) *AuthorList {
	s := &AuthorList{authors: authors}
	s.init(authorListScreen)
	return s
}

func (s *AuthorList) Mount(ctx context.Context) {
	ctx, span := s.span(ctx, "mount")
	defer span.End()
	s.startLoading(ctx)

	resp, err := s.authors.List(ctx)
	if err != nil {
		s.fetchFailed(ctx, MsgFetchAuthors, err)
		return
	}
	s.Authors = resp.Data
	s.ready(ctx)
}

// Delete removes an author after confirmation and drops them from the local list.
func (s *AuthorList) Delete(ctx context.Context, id uint, confirm Confirmer) {
	if !s.canDelete() || !confirm(PromptDeleteAuthor) {
		return
	}
	ctx, span := s.span(ctx, "delete")
	defer span.End()

	if _, err := s.authors.Delete(ctx, id); err != nil {
		s.deleteFailed(ctx, MsgDeleteAuthor, err)
		return
	}

	kept := make([]models.Author, 0, len(s.Authors))
	for _, a := range s.Authors {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.Authors = kept
	s.deleteSucceeded(nil)
}

// AuthorDetail shows an author with every post they wrote.
type AuthorDetail struct {
	base
	rawID   string
	id      uint
	authors AuthorCollection
	posts   PostCollection

	Author models.Author
	Posts  []models.Post
}

func NewAuthorDetail(rawID string, authors AuthorCollection, posts PostCollection) *AuthorDetail {
	s := &AuthorDetail{rawID: rawID, authors: authors, posts: posts}
	s.init(authorDetailScreen)
	return s
}

// Mount fetches the author and the whole post collection together, then
// keeps the posts whose author matches the route id.
func (s *AuthorDetail) Mount(ctx context.Context) {
	ctx, span := s.span(ctx, "mount")
	defer span.End()
	s.startLoading(ctx)

	id, err := parseID(s.rawID)
	if err != nil {
		s.fetchFailed(ctx, MsgFetchAuthorData, err)
		return
	}
	s.id = id

	var author models.Author
	var posts []models.Post
	err = join(
		func() error {
			resp, err := s.authors.Get(ctx, id)
			if err == nil {
				author = resp.Data
			}
			return err
		},
		func() error {
			resp, err := s.posts.List(ctx)
			if err == nil {
				posts = resp.Data
			}
			return err
		},
	)
	if err != nil {
		s.fetchFailed(ctx, MsgFetchAuthorData, err)
		return
	}

	s.Author = author
	s.Posts = PostsByAuthor(posts, id)
	s.ready(ctx)
}

// Previews returns the author's posts with content truncated for listing.
func (s *AuthorDetail) Previews() []PostRow {
	rows := make([]PostRow, 0, len(s.Posts))
	for _, p := range s.Posts {
		rows = append(rows, PostRow{
			Post:       p,
			AuthorName: s.Author.FullName(),
			Preview:    Truncate(p.Content, AuthorDetailPreviewLen),
		})
	}
	return rows
}

// Delete removes the author (and, server-side, their posts) after
// confirmation and navigates to the author list.
func (s *AuthorDetail) Delete(ctx context.Context, confirm Confirmer) {
	if !s.canDelete() || !confirm(PromptDeleteAuthorAndPosts) {
		return
	}
	ctx, span := s.span(ctx, "delete")
	defer span.End()

	if _, err := s.authors.Delete(ctx, s.id); err != nil {
		s.deleteFailed(ctx, MsgDeleteAuthor, err)
		return
	}
	s.deleteSucceeded(&Navigation{Path: authorsPath})
}

// CreateAuthor is the new-author form. It has nothing to load.
type CreateAuthor struct {
	base
	authors AuthorCollection

	Form AuthorForm
}

func NewCreateAuthor(authors AuthorCollection) *CreateAuthor {
	s := &CreateAuthor{authors: authors}
	s.init(createAuthorScreen)
	return s
}

// Mount makes the form ready immediately.
func (s *CreateAuthor) Mount(ctx context.Context) {
	s.startLoading(ctx)
	s.ready(ctx)
}

func (s *CreateAuthor) Submit(ctx context.Context, form AuthorForm) {
	if !s.beginSubmit(ctx) {
		return
	}
	ctx, span := s.span(ctx, "submit")
	defer span.End()
	s.Form = form

	fields, ok := form.Fields()
	if !ok {
		s.submitFailed(ctx, MsgCreateAuthor, errMissingFields)
		return
	}

	resp, err := s.authors.Create(ctx, fields)
	if err != nil {
		s.submitFailed(ctx, MsgCreateAuthor, err)
		return
	}
	s.submitSucceeded(ctx, MsgAuthorCreated, authorsPath+"/"+itoa(resp.Data.ID))
}

// EditAuthor is the edit form for an existing author.
type EditAuthor struct {
	base
	rawID   string
	id      uint
	authors AuthorCollection

	Form AuthorForm
}

func NewEditAuthor(rawID string, authors AuthorCollection) *EditAuthor {
	s := &EditAuthor{rawID: rawID, authors: authors}
	s.init(editAuthorScreen)
	return s
}

// ID returns the id of the author being edited, valid once mounted.
func (s *EditAuthor) ID() uint {
	return s.id
}

func (s *EditAuthor) Mount(ctx context.Context) {
	ctx, span := s.span(ctx, "mount")
	defer span.End()
	s.startLoading(ctx)

	id, err := parseID(s.rawID)
	if err != nil {
		s.fetchFailed(ctx, MsgFetchAuthorData, err)
		return
	}
	s.id = id

	resp, err := s.authors.Get(ctx, id)
	if err != nil {
		s.fetchFailed(ctx, MsgFetchAuthorData, err)
		return
	}
	s.Form = AuthorFormFrom(resp.Data)
	s.ready(ctx)
}

// Resume brings the form up holding values the user already typed, without
// fetching the author again.
func (s *EditAuthor) Resume(ctx context.Context, form AuthorForm) {
	ctx, span := s.span(ctx, "resume")
	defer span.End()
	s.startLoading(ctx)

	id, err := parseID(s.rawID)
	if err != nil {
		s.fetchFailed(ctx, MsgFetchAuthorData, err)
		return
	}
	s.id = id
	s.Form = form
	s.ready(ctx)
}

func (s *EditAuthor) Submit(ctx context.Context, form AuthorForm) {
	if !s.beginSubmit(ctx) {
		return
	}
	ctx, span := s.span(ctx, "submit")
	defer span.End()
	s.Form = form

	fields, ok := form.Fields()
	if !ok {
		s.submitFailed(ctx, MsgUpdateAuthor, errMissingFields)
		return
	}

	if _, err := s.authors.Update(ctx, s.id, fields); err != nil {
		s.submitFailed(ctx, MsgUpdateAuthor, err)
		return
	}
	s.submitSucceeded(ctx, MsgAuthorUpdated, authorsPath+"/"+itoa(s.id))
}
