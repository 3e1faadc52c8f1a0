package screen

import (
	"context"

	"inkwell/internal/models"
)

// User-facing messages for the post screens.
const (
	MsgFetchPosts    = "Failed to fetch posts. Please try again later."
	MsgFetchPost     = "Failed to fetch post. Please try again later."
	MsgFetchPostData = "Failed to fetch post data. Please try again later."
	MsgFetchAuthors  = "Failed to fetch authors. Please try again later."
	MsgDeletePost    = "Failed to delete post. Please try again."
	MsgCreatePost    = "Failed to create post. Please check your input and try again."
	MsgUpdatePost    = "Failed to update post. Please check your input and try again."
	MsgPostCreated   = "Post created successfully!"
	MsgPostUpdated   = "Post updated successfully!"
	PromptDeletePost = "Are you sure you want to delete this post?"
)

const (
	postsPath        = "/posts"
	postListScreen   = "post_list"
	postDetailScreen = "post_detail"
	createPostScreen = "create_post"
	editPostScreen   = "edit_post"
)

// PostRow is one rendered entry of the post list.
type PostRow struct {
	Post       models.Post
	AuthorName string
	Preview    string
}

// PostList shows every post with its author's name.
type PostList struct {
	base
	posts   PostCollection
	authors AuthorCollection

	Posts   []models.Post
	Authors []models.Author
}

func NewPostList(posts PostCollection, authors AuthorCollection) *PostList {
	s := &PostList{posts: posts, authors: authors}
	s.init(postListScreen)
	return s
}

// Mount fetches posts and authors together; either failing fails the screen.
func (s *PostList) Mount(ctx context.Context) {
	ctx, span := s.span(ctx, "mount")
	defer span.End()
	s.startLoading(ctx)

	var posts []models.Post
	var authors []models.Author
	err := join(
		func() error {
			resp, err := s.posts.List(ctx)
			if err == nil {
				posts = resp.Data
			}
			return err
		},
		func() error {
			resp, err := s.authors.List(ctx)
			if err == nil {
				authors = resp.Data
			}
			return err
		},
	)
	if err != nil {
		s.fetchFailed(ctx, MsgFetchPosts, err)
		return
	}

	s.Posts = posts
	s.Authors = authors
	s.ready(ctx)
}

// Rows derives the rendered list: author names resolved, content truncated.
func (s *PostList) Rows() []PostRow {
	rows := make([]PostRow, 0, len(s.Posts))
	for _, p := range s.Posts {
		rows = append(rows, PostRow{
			Post:       p,
			AuthorName: AuthorName(s.Authors, p.AuthorID),
			Preview:    Truncate(p.Content, PostListPreviewLen),
		})
	}
	return rows
}

// Delete removes a post after confirmation. The local list only changes once
// the API has acknowledged the delete.
func (s *PostList) Delete(ctx context.Context, id uint, confirm Confirmer) {
	if !s.canDelete() || !confirm(PromptDeletePost) {
		return
	}
	ctx, span := s.span(ctx, "delete")
	defer span.End()

	if _, err := s.posts.Delete(ctx, id); err != nil {
		s.deleteFailed(ctx, MsgDeletePost, err)
		return
	}

	kept := make([]models.Post, 0, len(s.Posts))
	for _, p := range s.Posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.Posts = kept
	s.deleteSucceeded(nil)
}

// PostDetail shows one post in full together with its author.
type PostDetail struct {
	base
	rawID   string
	id      uint
	posts   PostCollection
	authors AuthorCollection

	Post   models.Post
	Author models.Author
}

func NewPostDetail(rawID string, posts PostCollection, authors AuthorCollection) *PostDetail {
	s := &PostDetail{rawID: rawID, posts: posts, authors: authors}
	s.init(postDetailScreen)
	return s
}

// Mount fetches the post and then its author; the author lookup depends on
// the post, so the two calls run in sequence.
func (s *PostDetail) Mount(ctx context.Context) {
	ctx, span := s.span(ctx, "mount")
	defer span.End()
	s.startLoading(ctx)

	id, err := parseID(s.rawID)
	if err != nil {
		s.fetchFailed(ctx, MsgFetchPost, err)
		return
	}
	s.id = id

	post, err := s.posts.Get(ctx, id)
	if err != nil {
		s.fetchFailed(ctx, MsgFetchPost, err)
		return
	}
	author, err := s.authors.Get(ctx, post.Data.AuthorID)
	if err != nil {
		s.fetchFailed(ctx, MsgFetchPost, err)
		return
	}

	s.Post = post.Data
	s.Author = author.Data
	s.ready(ctx)
}

// Paragraphs returns the post content split into paragraphs.
func (s *PostDetail) Paragraphs() []string {
	return Paragraphs(s.Post.Content)
}

// Delete removes the post after confirmation and navigates to the post list.
func (s *PostDetail) Delete(ctx context.Context, confirm Confirmer) {
	if !s.canDelete() || !confirm(PromptDeletePost) {
		return
	}
	ctx, span := s.span(ctx, "delete")
	defer span.End()

	if _, err := s.posts.Delete(ctx, s.id); err != nil {
		s.deleteFailed(ctx, MsgDeletePost, err)
		return
	}
	s.deleteSucceeded(&Navigation{Path: postsPath})
}

// CreatePost is the new-post form. It loads the author picklist on mount.
type CreatePost struct {
	base
	posts   PostCollection
	authors AuthorCollection

	Authors []models.Author
	Form    PostForm
}

func NewCreatePost(posts PostCollection, authors AuthorCollection) *CreatePost {
	s := &CreatePost{posts: posts, authors: authors}
	s.init(createPostScreen)
	return s
}

func (s *CreatePost) Mount(ctx context.Context) {
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

// Resume brings the form up holding values the user already typed, ready for
// Submit. A missing picklist is logged and the form is kept.
func (s *CreatePost) Resume(ctx context.Context, form PostForm) {
	ctx, span := s.span(ctx, "resume")
	defer span.End()
	s.startLoading(ctx)

	s.Form = form
	s.Authors = s.picklist(ctx, s.authors)
	s.ready(ctx)
}

// Submit creates the post and, on success, schedules navigation to it.
func (s *CreatePost) Submit(ctx context.Context, form PostForm) {
	if !s.beginSubmit(ctx) {
		return
	}
	ctx, span := s.span(ctx, "submit")
	defer span.End()
	s.Form = form

	fields, ok := form.Fields()
	if !ok {
		s.submitFailed(ctx, MsgCreatePost, errMissingFields)
		return
	}

	resp, err := s.posts.Create(ctx, fields)
	if err != nil {
		s.submitFailed(ctx, MsgCreatePost, err)
		return
	}
	s.submitSucceeded(ctx, MsgPostCreated, postsPath+"/"+itoa(resp.Data.ID))
}

// EditPost is the edit form for an existing post.
type EditPost struct {
	base
	rawID   string
	id      uint
	posts   PostCollection
	authors AuthorCollection

	Authors []models.Author
	Form    PostForm
}

func NewEditPost(rawID string, posts PostCollection, authors AuthorCollection) *EditPost {
	s := &EditPost{rawID: rawID, posts: posts, authors: authors}
	s.init(editPostScreen)
	return s
}

// ID returns the id of the post being edited, valid once mounted.
func (s *EditPost) ID() uint {
	return s.id
}

// Mount fetches the post and the author picklist together.
func (s *EditPost) Mount(ctx context.Context) {
	ctx, span := s.span(ctx, "mount")
	defer span.End()
	s.startLoading(ctx)

	id, err := parseID(s.rawID)
	if err != nil {
		s.fetchFailed(ctx, MsgFetchPostData, err)
		return
	}
	s.id = id

	var post models.Post
	var authors []models.Author
	err = join(
		func() error {
			resp, err := s.posts.Get(ctx, id)
			if err == nil {
				post = resp.Data
			}
			return err
		},
		func() error {
			resp, err := s.authors.List(ctx)
			if err == nil {
				authors = resp.Data
			}
			return err
		},
	)
	if err != nil {
		s.fetchFailed(ctx, MsgFetchPostData, err)
		return
	}

	s.Form = PostFormFrom(post)
	s.Authors = authors
	s.ready(ctx)
}

// Resume brings the form up holding values the user already typed, without
// fetching the post again. A missing picklist is logged and the form is kept.
func (s *EditPost) Resume(ctx context.Context, form PostForm) {
	ctx, span := s.span(ctx, "resume")
	defer span.End()
	s.startLoading(ctx)

	id, err := parseID(s.rawID)
	if err != nil {
		s.fetchFailed(ctx, MsgFetchPostData, err)
		return
	}
	s.id = id
	s.Form = form
	s.Authors = s.picklist(ctx, s.authors)
	s.ready(ctx)
}

// Submit replaces every field of the post and, on success, schedules
// navigation back to its detail page.
func (s *EditPost) Submit(ctx context.Context, form PostForm) {
	if !s.beginSubmit(ctx) {
		return
	}
	ctx, span := s.span(ctx, "submit")
	defer span.End()
	s.Form = form

	fields, ok := form.Fields()
	if !ok {
		s.submitFailed(ctx, MsgUpdatePost, errMissingFields)
		return
	}

	if _, err := s.posts.Update(ctx, s.id, fields); err != nil {
		s.submitFailed(ctx, MsgUpdatePost, err)
		return
	}
	s.submitSucceeded(ctx, MsgPostUpdated, postsPath+"/"+itoa(s.id))
}
