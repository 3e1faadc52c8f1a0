// Package service holds validation and business rules between the HTTP
// handlers and the repositories.
package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

const maxTitleLen = 200

type PostService struct {
	postRepo   repository.PostRepository
	authorRepo repository.AuthorRepository
}

func NewPostService(postRepo repository.PostRepository, authorRepo repository.AuthorRepository) *PostService {
	return &PostService{
		postRepo:   postRepo,
		authorRepo: authorRepo,
	}
}

func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "Post", id)
	}
	return post, nil
}

func (s *PostService) CreatePost(ctx context.Context, in models.PostFields) (*models.Post, error) {
	in = in.Trimmed()
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	post := &models.Post{}
	post.Apply(in)
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// UpdatePost replaces every writable field of an existing post.
func (s *PostService) UpdatePost(ctx context.Context, id uint, in models.PostFields) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "Post", id)
	}

	in = in.Trimmed()
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	post.Apply(in)
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, mapRepoError(err, "Post", id)
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "Post", id)
	}
	return nil
}

func (s *PostService) validate(ctx context.Context, in models.PostFields) error {
	if in.Title == "" {
		return models.NewValidationError("Title is required")
	}
	if utf8.RuneCountInString(in.Title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 200 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return models.NewValidationError("Content is required")
	}
	if in.Author == 0 {
		return models.NewValidationError("Author is required")
	}

	exists, err := s.authorRepo.Exists(ctx, in.Author)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !exists {
		return models.NewValidationError("Author does not exist")
	}
	return nil
}

func mapRepoError(err error, resource string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return models.NewInternalError(err)
}
