package reviews

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Meenakshi1402/project-ReadRater/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	dbPath := "./test_reviews_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{}, &entities.Book{}, &entities.Review{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func seedUserAndBook(t *testing.T, db *gorm.DB) (*entities.User, *entities.Book) {
	t.Helper()
	user := &entities.User{Username: "reader", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	book := &entities.Book{Title: "Dune", Author: "Frank Herbert"}
	require.NoError(t, db.Create(book).Error)
	return user, book
}

func TestRepository_Create(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	user, book := seedUserAndBook(t, db)

	review := &entities.Review{UserID: user.ID, BookID: book.ID, Rating: 4, Comment: "solid"}
	err := repo.Create(review)

	require.NoError(t, err)
	assert.NotZero(t, review.ID)
	assert.False(t, review.CreatedAt.IsZero())
}

func TestRepository_ListForBook_OrderedNewestFirst(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	user, book := seedUserAndBook(t, db)

	base := time.Now().Add(-time.Hour)
	for i, comment := range []string{"oldest", "middle", "newest"} {
		review := &entities.Review{
			UserID:    user.ID,
			BookID:    book.ID,
			Rating:    i + 1,
			Comment:   comment,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(review))
	}

	rows, err := repo.ListForBook(book.ID)

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "newest", rows[0].Comment)
	assert.Equal(t, "middle", rows[1].Comment)
	assert.Equal(t, "oldest", rows[2].Comment)
	for i := 0; i < len(rows)-1; i++ {
		assert.True(t, rows[i].CreatedAt.After(rows[i+1].CreatedAt))
	}
}

func TestRepository_ListForBook_JoinsUsername(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	user, book := seedUserAndBook(t, db)
	require.NoError(t, repo.Create(&entities.Review{UserID: user.ID, BookID: book.ID, Rating: 5}))

	rows, err := repo.ListForBook(book.ID)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "reader", rows[0].Username)
	assert.Equal(t, user.ID, rows[0].UserID)
}

func TestRepository_ListForBook_OnlyThatBook(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	user, book := seedUserAndBook(t, db)
	other := &entities.Book{Title: "Hyperion", Author: "Dan Simmons"}
	require.NoError(t, db.Create(other).Error)

	require.NoError(t, repo.Create(&entities.Review{UserID: user.ID, BookID: book.ID, Rating: 5}))
	require.NoError(t, repo.Create(&entities.Review{UserID: user.ID, BookID: other.ID, Rating: 2}))

	rows, err := repo.ListForBook(book.ID)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, book.ID, rows[0].BookID)
}

func TestRepository_ListForBook_Empty(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	_, book := seedUserAndBook(t, db)

	rows, err := repo.ListForBook(book.ID)

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepository_DeleteOwned_ByAuthor(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	user, book := seedUserAndBook(t, db)
	review := &entities.Review{UserID: user.ID, BookID: book.ID, Rating: 3}
	require.NoError(t, repo.Create(review))

	affected, err := repo.DeleteOwned(review.ID, user.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	rows, err := repo.ListForBook(book.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepository_DeleteOwned_NotOwner(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	user, book := seedUserAndBook(t, db)
	other := &entities.User{Username: "other", PasswordHash: "x"}
	require.NoError(t, db.Create(other).Error)

	review := &entities.Review{UserID: user.ID, BookID: book.ID, Rating: 3}
	require.NoError(t, repo.Create(review))

	affected, err := repo.DeleteOwned(review.ID, other.ID)

	require.NoError(t, err)
	assert.Zero(t, affected) // silent no-op, review set unchanged

	rows, err := repo.ListForBook(book.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRepository_DeleteOwned_MissingReview(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	user, _ := seedUserAndBook(t, db)

	affected, err := repo.DeleteOwned(999, user.ID)

	require.NoError(t, err)
	assert.Zero(t, affected)
}
