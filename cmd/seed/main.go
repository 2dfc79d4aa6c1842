package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/model"
	"inkwell/internal/repository"
)

const (
	demoEmail    = "demo@inkwell.local"
	demoPassword = "demo12345"
	demoFullName = "Demo Author"
)

// seedPost holds fixture content for local development.
type seedPost struct {
	Title string
	Body  string
	Tags  []string
}

var seedPosts = []seedPost{
	{
		Title: "Hello, Inkwell",
		Body:  "A first post to verify the stack end to end: database, auth, and tags.",
		Tags:  []string{"meta", "hello"},
	},
	{
		Title: "Writing with tags",
		Body:  "Tags attached here should show up under /tags once seeding finishes.",
		Tags:  []string{"tags", "howto"},
	},
	{
		Title: "Uploads and images",
		Body:  "Posts may reference an uploaded image by its /uploads URL.",
		Tags:  []string{"uploads"},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	ctx := context.Background()

	author, created, err := ensureDemoAuthor(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed demo author: %v", err)
	}
	if created {
		log.Printf("Created demo author %s (password %q)", demoEmail, demoPassword)
	} else {
		log.Printf("Demo author %s already present", demoEmail)
	}

	seeded, err := seedDemoPosts(ctx, postRepo, author)
	if err != nil {
		log.Fatalf("Failed to seed posts: %v", err)
	}

	log.Printf("Seed completed: %d new posts created", seeded)
}

// ensureDemoAuthor creates the demo author if it does not exist yet.
func ensureDemoAuthor(ctx context.Context, repo repository.UserRepository) (*model.User, bool, error) {
	existing, err := repo.FindByEmail(ctx, demoEmail)
	if err == nil {
		return existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
	if err != nil {
		return nil, false, err
	}

	author := &model.User{
		Email:        demoEmail,
		PasswordHash: string(hash),
		FullName:     demoFullName,
	}
	if err := repo.Create(ctx, author); err != nil {
		return nil, false, err
	}
	return author, true, nil
}

// seedDemoPosts creates fixture posts that are not present yet, matching by title.
func seedDemoPosts(ctx context.Context, repo repository.PostRepository, author *model.User) (int, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, err
	}

	titles := make(map[string]struct{}, len(existing))
	for _, post := range existing {
		titles[post.Title] = struct{}{}
	}

	seeded := 0
	for _, fixture := range seedPosts {
		if _, ok := titles[fixture.Title]; ok {
			continue
		}
		post := &model.Post{
			Title:    fixture.Title,
			Body:     fixture.Body,
			Tags:     fixture.Tags,
			AuthorID: author.ID,
		}
		if err := repo.Create(ctx, post); err != nil {
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}
