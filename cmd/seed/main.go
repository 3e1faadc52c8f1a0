// Command seed fills the blog database with demo authors and posts.
package main

import (
	"flag"
	"log"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	numAuthors := flag.Int("authors", 10, "Number of authors to create")
	postsPerAuthor := flag.Int("posts", 5, "Maximum number of posts per author")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	seedValue := flag.Int64("seed", 0, "Random seed (0 uses the current time)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d authors, up to %d posts each, clean=%v\n", *numAuthors, *postsPerAuthor, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *seedValue == 0 {
		*seedValue = time.Now().UnixNano()
	}

	authors, posts, err := seed.NewSeeder(db, *seedValue).Run(seed.Options{
		Authors:        *numAuthors,
		PostsPerAuthor: *postsPerAuthor,
		Clean:          *shouldClean,
	})
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✨ All done! Created %d authors and %d posts (seed %d).", authors, posts, *seedValue)
}
