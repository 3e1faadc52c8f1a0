package repository

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// AuthorRepository defines the interface for author data operations
type AuthorRepository interface {
	List(ctx context.Context) ([]models.Author, error)
	GetByID(ctx context.Context, id uint) (*models.Author, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, author *models.Author) error
	Update(ctx context.Context, author *models.Author) error
	Delete(ctx context.Context, id uint) error
}

type authorRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewAuthorRepository creates a new author repository
func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{db: db, log: observability.NewRepoLogger("authors")}
}

// List returns every author ordered by first then last name.
func (r *authorRepository) List(ctx context.Context) ([]models.Author, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "List", "authors")
	defer span.End()
	defer observability.TrackQuery("list", "authors")()

	var authors []models.Author
	if err := r.db.WithContext(ctx).Order("first_name, last_name, id").Find(&authors).Error; err != nil {
		r.log.LogError(ctx, err, "list")
		return nil, err
	}
	return authors, nil
}

func (r *authorRepository) GetByID(ctx context.Context, id uint) (*models.Author, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "GetByID", "authors")
	defer span.End()
	defer observability.TrackQuery("get", "authors")()

	var author models.Author
	if err := r.db.WithContext(ctx).First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *authorRepository) Exists(ctx context.Context, id uint) (bool, error) {
	defer observability.TrackQuery("exists", "authors")()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Author{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *authorRepository) Create(ctx context.Context, author *models.Author) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "Create", "authors")
	defer span.End()
	defer observability.TrackQuery("create", "authors")()

	if err := r.db.WithContext(ctx).Create(author).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return err
	}
	r.log.LogCreate(ctx, map[string]interface{}{"id": author.ID})
	return nil
}

// Update overwrites every writable column of an existing author.
func (r *authorRepository) Update(ctx context.Context, author *models.Author) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "Update", "authors")
	defer span.End()
	defer observability.TrackQuery("update", "authors")()

	result := r.db.WithContext(ctx).Model(author).
		Select("first_name", "last_name", "email", "phone_number").
		Updates(author)
	if result.Error != nil {
		r.log.LogError(ctx, result.Error, "update")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"id": author.ID})
	return nil
}

// Delete removes an author together with all of their posts in one transaction.
func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "Delete", "authors")
	defer span.End()
	defer observability.TrackQuery("delete", "authors")()

	var removedPosts int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posts := tx.Where("author_id = ?", id).Delete(&models.Post{})
		if posts.Error != nil {
			return posts.Error
		}
		removedPosts = posts.RowsAffected

		result := tx.Delete(&models.Author{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		r.log.LogError(ctx, err, "delete")
		return err
	}
	r.log.LogDelete(ctx, map[string]interface{}{"id": id, "posts_removed": removedPosts})
	return nil
}
