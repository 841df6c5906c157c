// Package books provides database operations for the book catalogue.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetByID(123)
package books

import (
	"gorm.io/gorm"

	"github.com/Meenakshi1402/project-ReadRater/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the whole catalogue, or only the books whose title or
// author contains query as a case-insensitive substring.
func (r *Repository) List(query string) ([]entities.Book, error) {
	var books []entities.Book
	tx := r.db
	if query != "" {
		pattern := "%" + query + "%"
		tx = tx.Where("LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?)", pattern, pattern)
	}
	err := tx.Find(&books).Error
	return books, err
}

// GetByID retrieves a book by its ID.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Create inserts a new book.
func (r *Repository) Create(book *entities.Book) error {
	return r.db.Create(book).Error
}

// Update replaces a book's title, author and cover URL.
// The map form lets an empty cover URL clear the stored value.
func (r *Repository) Update(book *entities.Book) error {
	return r.db.Model(&entities.Book{}).Where("id = ?", book.ID).Updates(map[string]any{
		"title":     book.Title,
		"author":    book.Author,
		"cover_url": book.CoverURL,
	}).Error
}

// Delete removes a book and all of its reviews in a single transaction,
// so a failure can never leave reviews pointing at a missing book.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&entities.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Book{}, id).Error
	})
}
