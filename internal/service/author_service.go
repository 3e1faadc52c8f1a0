package service

import (
	"context"
	"net/mail"
	"unicode/utf8"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

const (
	maxNameLen  = 100
	maxPhoneLen = 20
)

type AuthorService struct {
	authorRepo repository.AuthorRepository
}

func NewAuthorService(authorRepo repository.AuthorRepository) *AuthorService {
	return &AuthorService{authorRepo: authorRepo}
}

func (s *AuthorService) ListAuthors(ctx context.Context) ([]models.Author, error) {
	authors, err := s.authorRepo.List(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if authors == nil {
		authors = []models.Author{}
	}
	return authors, nil
}

func (s *AuthorService) GetAuthor(ctx context.Context, id uint) (*models.Author, error) {
	author, err := s.authorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "Author", id)
	}
	return author, nil
}

func (s *AuthorService) CreateAuthor(ctx context.Context, in models.AuthorFields) (*models.Author, error) {
	in = in.Trimmed()
	if err := validateAuthor(in); err != nil {
		return nil, err
	}

	author := &models.Author{}
	author.Apply(in)
	if err := s.authorRepo.Create(ctx, author); err != nil {
		return nil, models.NewInternalError(err)
	}
	return author, nil
}

// UpdateAuthor replaces every writable field of an existing author.
func (s *AuthorService) UpdateAuthor(ctx context.Context, id uint, in models.AuthorFields) (*models.Author, error) {
	author, err := s.authorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "Author", id)
	}

	in = in.Trimmed()
	if err := validateAuthor(in); err != nil {
		return nil, err
	}

	author.Apply(in)
	if err := s.authorRepo.Update(ctx, author); err != nil {
		return nil, mapRepoError(err, "Author", id)
	}
	return author, nil
}

// DeleteAuthor removes the author and every post they wrote.
func (s *AuthorService) DeleteAuthor(ctx context.Context, id uint) error {
	if err := s.authorRepo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "Author", id)
	}
	return nil
}

func validateAuthor(in models.AuthorFields) error {
	switch {
	case in.FirstName == "":
		return models.NewValidationError("First name is required")
	case in.LastName == "":
		return models.NewValidationError("Last name is required")
	case in.Email == "":
		return models.NewValidationError("Email is required")
	case in.PhoneNumber == "":
		return models.NewValidationError("Phone number is required")
	case utf8.RuneCountInString(in.FirstName) > maxNameLen || utf8.RuneCountInString(in.LastName) > maxNameLen:
		return models.NewValidationError("Name too long (max 100 characters)")
	case utf8.RuneCountInString(in.PhoneNumber) > maxPhoneLen:
		return models.NewValidationError("Phone number too long (max 20 characters)")
	}

	addr, err := mail.ParseAddress(in.Email)
	if err != nil || addr.Address != in.Email {
		return models.NewValidationError("Enter a valid email address")
	}
	return nil
}
