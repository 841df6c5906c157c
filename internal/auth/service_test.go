package auth

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Meenakshi1402/project-ReadRater/internal/config"
	"github.com/Meenakshi1402/project-ReadRater/internal/database/users"
	"github.com/Meenakshi1402/project-ReadRater/internal/entities"
)

func setupService(t *testing.T) (*Service, func()) {
	dbPath := "./test_auth_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{})
	require.NoError(t, err)

	svc := NewService(users.NewRepository(db), config.Auth{BcryptCost: bcrypt.MinCost})

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return svc, cleanup
}

func TestService_Register(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	user, err := svc.Register("reader", "secret")

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "reader", user.Username)
	assert.NotEqual(t, "secret", user.PasswordHash)
}

func TestService_Register_TrimsUsername(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	user, err := svc.Register("  reader  ", "secret")

	require.NoError(t, err)
	assert.Equal(t, "reader", user.Username)
}

func TestService_Register_MissingFields(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	_, err := svc.Register("", "secret")
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.Register("   ", "secret")
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.Register("reader", "")
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	_, err := svc.Register("reader", "secret")
	require.NoError(t, err)

	_, err = svc.Register("reader", "different")
	assert.ErrorIs(t, err, ErrUserExists)

	// The first registration is the only surviving row
	user, err := svc.Authenticate("reader", "secret")
	require.NoError(t, err)
	assert.Equal(t, "reader", user.Username)
}

func TestService_Authenticate(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	registered, err := svc.Register("reader", "secret")
	require.NoError(t, err)

	user, err := svc.Authenticate("reader", "secret")

	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestService_Authenticate_GenericFailure(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	_, err := svc.Register("reader", "secret")
	require.NoError(t, err)

	// Wrong password and unknown username must be indistinguishable
	_, wrongPassword := svc.Authenticate("reader", "not-the-password")
	_, unknownUser := svc.Authenticate("nobody", "whatever")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestService_GetUserByID_NotFound(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	_, err := svc.GetUserByID(999)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIsUniqueViolation(t *testing.T) {
	dup := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}
	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(errors.New("UNIQUE constraint failed: users.username")))

	// Store failures must not masquerade as a taken username
	assert.False(t, isUniqueViolation(errors.New("disk I/O error")))
	assert.False(t, isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrBusy}))
}

func TestService_Register_StoreFailureIsNotUserExists(t *testing.T) {
	svc, cleanup := setupService(t)
	cleanup() // close the database out from under the service

	_, err := svc.Register("reader", "secret")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserExists)
}
