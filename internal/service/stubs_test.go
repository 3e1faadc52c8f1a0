package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	listFn    func(context.Context) ([]models.Post, error)
	getByIDFn func(context.Context, uint) (*models.Post, error)
	createFn  func(context.Context, *models.Post) error
	updateFn  func(context.Context, *models.Post) error
	deleteFn  func(context.Context, uint) error
}

func (s *postRepoStub) List(ctx context.Context) ([]models.Post, error) { return s.listFn(ctx) }
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		listFn:    func(_ context.Context) ([]models.Post, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		createFn:  func(_ context.Context, p *models.Post) error { p.ID = 1; return nil },
		updateFn:  func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
	}
}

// authorRepoStub is a stub for repository.AuthorRepository.
type authorRepoStub struct {
	listFn    func(context.Context) ([]models.Author, error)
	getByIDFn func(context.Context, uint) (*models.Author, error)
	existsFn  func(context.Context, uint) (bool, error)
	createFn  func(context.Context, *models.Author) error
	updateFn  func(context.Context, *models.Author) error
	deleteFn  func(context.Context, uint) error
}

func (s *authorRepoStub) List(ctx context.Context) ([]models.Author, error) { return s.listFn(ctx) }
func (s *authorRepoStub) GetByID(ctx context.Context, id uint) (*models.Author, error) {
	return s.getByIDFn(ctx, id)
}
func (s *authorRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *authorRepoStub) Create(ctx context.Context, a *models.Author) error {
	return s.createFn(ctx, a)
}
func (s *authorRepoStub) Update(ctx context.Context, a *models.Author) error {
	return s.updateFn(ctx, a)
}
func (s *authorRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

func noopAuthorRepo() *authorRepoStub {
	return &authorRepoStub{
		listFn:    func(_ context.Context) ([]models.Author, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Author, error) { return &models.Author{ID: id}, nil },
		existsFn:  func(_ context.Context, _ uint) (bool, error) { return true, nil },
		createFn:  func(_ context.Context, a *models.Author) error { a.ID = 1; return nil },
		updateFn:  func(_ context.Context, _ *models.Author) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
	}
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T", err)
	require.Equal(t, code, appErr.Code)
}
