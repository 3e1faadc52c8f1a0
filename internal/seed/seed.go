package seed

import (
	"fmt"
	"log/slog"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// Options controls how much demo data Run creates.
type Options struct {
	Authors        int
	PostsPerAuthor int
	Clean          bool
}

// Seeder populates the database with demo authors and posts.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder returns a Seeder bound to db.
func NewSeeder(db *gorm.DB, seed int64) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, seed)}
}

// ClearAll removes every post and author.
func (s *Seeder) ClearAll() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Post{}).Error; err != nil {
			return fmt.Errorf("clear posts: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Author{}).Error; err != nil {
			return fmt.Errorf("clear authors: %w", err)
		}
		return nil
	})
}

// Run seeds opts.Authors authors, each with up to opts.PostsPerAuthor posts.
// Some authors deliberately get no posts so the empty author view has data.
func (s *Seeder) Run(opts Options) (authors, posts int, err error) {
	if opts.Clean {
		if err := s.ClearAll(); err != nil {
			return 0, 0, err
		}
	}

	for i := 0; i < opts.Authors; i++ {
		author, err := s.factory.CreateAuthor()
		if err != nil {
			return authors, posts, fmt.Errorf("create author: %w", err)
		}
		authors++

		count := 0
		if opts.PostsPerAuthor > 0 {
			count = s.factory.rng.Intn(opts.PostsPerAuthor + 1)
		}
		created, err := s.factory.CreatePosts(author, count)
		if err != nil {
			return authors, posts, fmt.Errorf("create posts for author %d: %w", author.ID, err)
		}
		posts += len(created)
	}

	observability.Logger.Info("seed completed",
		slog.Int("authors", authors),
		slog.Int("posts", posts),
	)
	return authors, posts, nil
}
