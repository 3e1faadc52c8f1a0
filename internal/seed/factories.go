// Package seed provides helpers to create demo data for the blog database.
// These helpers are intended for development and testing only.
package seed

import (
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db    *gorm.DB
	faker *gofakeit.Faker
	rng   *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB. A zero seed
// picks one from the clock.
func NewFactory(db *gorm.DB, seed int64) *Factory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{
		db:    db,
		faker: gofakeit.New(seed),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// BuildAuthor constructs an author without persisting it.
func (f *Factory) BuildAuthor(overrides ...func(*models.Author)) *models.Author {
	author := &models.Author{
		FirstName:   f.faker.FirstName(),
		LastName:    f.faker.LastName(),
		Email:       f.faker.Email(),
		PhoneNumber: f.faker.Phone(),
	}
	for _, override := range overrides {
		override(author)
	}
	return author
}

// BuildPost constructs a post for the author without persisting it. Content
// has between one and four paragraphs separated by line breaks.
func (f *Factory) BuildPost(author *models.Author, overrides ...func(*models.Post)) *models.Post {
	paragraphs := 1 + f.rng.Intn(4)
	post := &models.Post{
		Title:    f.faker.Sentence(4 + f.rng.Intn(5)),
		Content:  f.faker.Paragraph(paragraphs, 3, 12, "\n"),
		AuthorID: author.ID,
	}
	if len(post.Title) > 200 {
		post.Title = post.Title[:200]
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreateAuthor builds and persists an author.
func (f *Factory) CreateAuthor(overrides ...func(*models.Author)) (*models.Author, error) {
	author := f.BuildAuthor(overrides...)
	if err := f.db.Create(author).Error; err != nil {
		return nil, err
	}
	return author, nil
}

// CreatePosts builds and persists count posts for the author in one batch.
func (f *Factory) CreatePosts(author *models.Author, count int) ([]*models.Post, error) {
	if count <= 0 {
		return nil, nil
	}
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		posts = append(posts, f.BuildPost(author))
	}
	if err := f.db.CreateInBatches(posts, 100).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
