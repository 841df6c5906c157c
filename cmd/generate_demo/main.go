// Command generate_demo creates a demo database with sample users, books
// and reviews. Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/Meenakshi1402/project-ReadRater/internal/auth"
	"github.com/Meenakshi1402/project-ReadRater/internal/database"
	"github.com/Meenakshi1402/project-ReadRater/internal/database/books"
	"github.com/Meenakshi1402/project-ReadRater/internal/database/reviews"
	"github.com/Meenakshi1402/project-ReadRater/internal/database/users"
	"github.com/Meenakshi1402/project-ReadRater/internal/entities"
)

const defaultDemoDatabasePath = "./demo.db"

// Every demo account logs in with this password.
const demoPassword = "demo1234"

type demoReview struct {
	username string
	rating   int
	comment  string
}

type demoBook struct {
	book    entities.Book
	reviews []demoReview
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	userRepo := users.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	reviewRepo := reviews.NewRepository(db.DB)

	userIDs := createUsers(userRepo)
	createBooks(bookRepo, reviewRepo, userIDs)

	log.Printf("Demo database ready. Log in as any demo user with password %q.", demoPassword)
}

func createUsers(repo *users.Repository) map[string]uint {
	hash, err := auth.HashPassword(demoPassword, bcrypt.MinCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	ids := make(map[string]uint)
	for _, username := range []string{"alice", "bob", "carol"} {
		user, err := repo.Create(username, hash)
		if err != nil {
			log.Fatalf("Failed to create user %s: %v", username, err)
		}
		ids[username] = user.ID
		log.Printf("Created user: %s", username)
	}
	return ids
}

func createBooks(bookRepo *books.Repository, reviewRepo *reviews.Repository, userIDs map[string]uint) {
	for _, demo := range demoLibrary() {
		book := demo.book
		if err := bookRepo.Create(&book); err != nil {
			log.Printf("Failed to save book %s: %v", book.Title, err)
			continue
		}
		log.Printf("Saved: %s by %s", book.Title, book.Author)

		for _, dr := range demo.reviews {
			review := &entities.Review{
				UserID:  userIDs[dr.username],
				BookID:  book.ID,
				Rating:  dr.rating,
				Comment: dr.comment,
			}
			if err := reviewRepo.Create(review); err != nil {
				log.Printf("Failed to save review for %s: %v", book.Title, err)
			}
		}
	}
}

func demoLibrary() []demoBook {
	return []demoBook{
		{
			book: entities.Book{
				Title:  "Pride and Prejudice",
				Author: "Jane Austen",
			},
			reviews: []demoReview{
				{"alice", 5, "A sharp comedy of manners that still lands two centuries later."},
				{"bob", 4, "Slow start, but Elizabeth Bennet carries the whole thing."},
			},
		},
		{
			book: entities.Book{
				Title:  "Moby-Dick",
				Author: "Herman Melville",
			},
			reviews: []demoReview{
				{"carol", 4, "The whaling chapters are a slog but the ending is unforgettable."},
			},
		},
		{
			book: entities.Book{
				Title:  "Frankenstein",
				Author: "Mary Shelley",
			},
			reviews: []demoReview{
				{"alice", 5, "The creature is the most sympathetic character in the book."},
				{"carol", 3, "Expected horror, got a framing story inside a framing story."},
			},
		},
		{
			book: entities.Book{
				Title:  "The Count of Monte Cristo",
				Author: "Alexandre Dumas",
			},
			reviews: []demoReview{
				{"bob", 5, "The definitive revenge story. Worth every one of its pages."},
			},
		},
		{
			book: entities.Book{
				Title:  "Dracula",
				Author: "Bram Stoker",
			},
		},
	}
}
