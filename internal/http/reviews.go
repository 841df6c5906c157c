package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Meenakshi1402/project-ReadRater/internal/auth"
	"github.com/Meenakshi1402/project-ReadRater/internal/database/books"
	"github.com/Meenakshi1402/project-ReadRater/internal/database/reviews"
	"github.com/Meenakshi1402/project-ReadRater/internal/entities"
)

type ReviewsController struct {
	reviews *reviews.Repository
	books   *books.Repository
}

func NewReviewsController(reviewRepo *reviews.Repository, bookRepo *books.Repository) *ReviewsController {
	return &ReviewsController{
		reviews: reviewRepo,
		books:   bookRepo,
	}
}

// Create attaches a review to a book on behalf of the logged-in user.
// The rating must be a whole number between 1 and 5.
func (controller *ReviewsController) Create(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := controller.books.GetByID(bookID); err != nil {
		c.String(http.StatusNotFound, "Book not found")
		return
	}

	rating, err := strconv.Atoi(strings.TrimSpace(c.PostForm("rating")))
	if err != nil || rating < entities.MinRating || rating > entities.MaxRating {
		c.String(http.StatusBadRequest, "Invalid rating")
		return
	}

	review := &entities.Review{
		UserID:  auth.GetUserID(c),
		BookID:  bookID,
		Rating:  rating,
		Comment: strings.TrimSpace(c.PostForm("comment")),
	}
	if err := controller.reviews.Create(review); err != nil {
		c.String(http.StatusInternalServerError, "Error saving review: %s", err.Error())
		return
	}

	c.Redirect(http.StatusFound, "/books/"+c.Param("id"))
}

// Delete removes a review only when it belongs to the logged-in user.
// Deleting someone else's review (or a missing one) is a silent no-op.
func (controller *ReviewsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := controller.reviews.DeleteOwned(id, auth.GetUserID(c)); err != nil {
		c.String(http.StatusInternalServerError, "Error deleting review: %s", err.Error())
		return
	}

	redirectWithFlash(c, refererPath(c), "Review deleted.")
}
