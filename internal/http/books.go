package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Meenakshi1402/project-ReadRater/internal/auth"
	"github.com/Meenakshi1402/project-ReadRater/internal/database/books"
	"github.com/Meenakshi1402/project-ReadRater/internal/database/reviews"
	"github.com/Meenakshi1402/project-ReadRater/internal/entities"
)

type BooksController struct {
	books   *books.Repository
	reviews *reviews.Repository
}

func NewBooksController(bookRepo *books.Repository, reviewRepo *reviews.Repository) *BooksController {
	return &BooksController{
		books:   bookRepo,
		reviews: reviewRepo,
	}
}

// ListPage renders the catalogue, filtered by the optional ?q= substring.
func (controller *BooksController) ListPage(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	list, err := controller.books.List(query)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":    "Books",
		"Books":    list,
		"Query":    query,
		"Flash":    c.Query("flash"),
		"Username": auth.GetUsername(c),
	})
}

// DetailPage renders one book with its reviews, newest first.
func (controller *BooksController) DetailPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.books.GetByID(id)
	if err != nil {
		c.String(http.StatusNotFound, "Book not found")
		return
	}

	bookReviews, err := controller.reviews.ListForBook(id)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading reviews: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "book_detail.html", gin.H{
		"Title":     book.Title,
		"Book":      book,
		"Reviews":   bookReviews,
		"Flash":     c.Query("flash"),
		"UserID":    auth.GetUserID(c),
		"Username":  auth.GetUsername(c),
		"CSRFToken": auth.GetCSRFToken(c),
	})
}

// AddPage renders the empty book form.
func (controller *BooksController) AddPage(c *gin.Context) {
	c.HTML(http.StatusOK, "add_book.html", gin.H{
		"Title":     "Add Book",
		"Flash":     c.Query("flash"),
		"Username":  auth.GetUsername(c),
		"CSRFToken": auth.GetCSRFToken(c),
	})
}

// Add inserts a new book and redirects to the list.
func (controller *BooksController) Add(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	author := strings.TrimSpace(c.PostForm("author"))
	coverURL := strings.TrimSpace(c.PostForm("cover_url"))

	if title == "" || author == "" {
		c.HTML(http.StatusBadRequest, "add_book.html", gin.H{
			"Title":     "Add Book",
			"Error":     "Title and author are required.",
			"BookTitle": title,
			"Author":    author,
			"CoverURL":  coverURL,
			"Username":  auth.GetUsername(c),
			"CSRFToken": auth.GetCSRFToken(c),
		})
		return
	}

	book := &entities.Book{Title: title, Author: author, CoverURL: coverURL}
	if err := controller.books.Create(book); err != nil {
		c.String(http.StatusInternalServerError, "Error saving book: %s", err.Error())
		return
	}

	redirectWithFlash(c, "/", "Book added successfully!")
}

// EditPage renders the form pre-filled with the book being edited.
func (controller *BooksController) EditPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.books.GetByID(id)
	if err != nil {
		c.String(http.StatusNotFound, "Book not found")
		return
	}

	c.HTML(http.StatusOK, "edit_book.html", gin.H{
		"Title":     "Edit Book",
		"Book":      book,
		"Flash":     c.Query("flash"),
		"Username":  auth.GetUsername(c),
		"CSRFToken": auth.GetCSRFToken(c),
	})
}

// Edit updates an existing book and redirects to its detail page.
func (controller *BooksController) Edit(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.books.GetByID(id)
	if err != nil {
		c.String(http.StatusNotFound, "Book not found")
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	author := strings.TrimSpace(c.PostForm("author"))
	coverURL := strings.TrimSpace(c.PostForm("cover_url"))

	if title == "" || author == "" {
		c.HTML(http.StatusBadRequest, "edit_book.html", gin.H{
			"Title":     "Edit Book",
			"Book":      book,
			"Error":     "Title and author are required.",
			"Username":  auth.GetUsername(c),
			"CSRFToken": auth.GetCSRFToken(c),
		})
		return
	}

	book.Title = title
	book.Author = author
	book.CoverURL = coverURL
	if err := controller.books.Update(book); err != nil {
		c.String(http.StatusInternalServerError, "Error updating book: %s", err.Error())
		return
	}

	redirectWithFlash(c, "/books/"+c.Param("id"), "Book updated.")
}

// Delete removes a book together with its reviews and redirects to the
// list. The cascade runs inside one transaction.
func (controller *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.books.Delete(id); err != nil {
		c.String(http.StatusInternalServerError, "Error deleting book: %s", err.Error())
		return
	}

	redirectWithFlash(c, "/", "Book and its reviews deleted.")
}
