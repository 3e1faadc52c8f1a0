// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	List(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, log: observability.NewRepoLogger("posts")}
}

// List returns every post, newest first.
func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "List", "posts")
	defer span.End()
	defer observability.TrackQuery("list", "posts")()

	var posts []models.Post
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&posts).Error; err != nil {
		r.log.LogError(ctx, err, "list")
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "GetByID", "posts")
	defer span.End()
	defer observability.TrackQuery("get", "posts")()

	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "Create", "posts")
	defer span.End()
	defer observability.TrackQuery("create", "posts")()

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return err
	}
	r.log.LogCreate(ctx, map[string]interface{}{"id": post.ID, "author_id": post.AuthorID})
	return nil
}

// Update overwrites every writable column of an existing post.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "Update", "posts")
	defer span.End()
	defer observability.TrackQuery("update", "posts")()

	result := r.db.WithContext(ctx).Model(post).
		Select("title", "content", "author_id").
		Updates(post)
	if result.Error != nil {
		r.log.LogError(ctx, result.Error, "update")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"id": post.ID})
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "Delete", "posts")
	defer span.End()
	defer observability.TrackQuery("delete", "posts")()

	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		r.log.LogError(ctx, result.Error, "delete")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.log.LogDelete(ctx, map[string]interface{}{"id": id})
	return nil
}
