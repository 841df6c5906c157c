// Package reviews provides database operations for book reviews.
package reviews

import (
	"time"

	"gorm.io/gorm"

	"github.com/Meenakshi1402/project-ReadRater/internal/entities"
)

// ReviewWithAuthor is a review row joined with the author's username,
// shaped for the book detail page.
type ReviewWithAuthor struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	BookID    uint      `json:"book_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
}

// Repository handles all review database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListForBook returns all reviews for a book joined with the author's
// username, newest first.
func (r *Repository) ListForBook(bookID uint) ([]ReviewWithAuthor, error) {
	var rows []ReviewWithAuthor
	err := r.db.Table("reviews").
		Select("reviews.id, reviews.user_id, reviews.book_id, reviews.rating, reviews.comment, reviews.created_at, users.username").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.book_id = ?", bookID).
		Order("reviews.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// Create inserts a new review.
func (r *Repository) Create(review *entities.Review) error {
	return r.db.Create(review).Error
}

// DeleteOwned removes a review only when it belongs to userID. The
// ownership check lives in the delete predicate itself; a zero row
// count means the review is missing or owned by someone else.
func (r *Repository) DeleteOwned(id, userID uint) (int64, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Review{})
	return result.RowsAffected, result.Error
}
