package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAuthTemplates(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	authDir := filepath.Join(dir, "auth")
	require.NoError(t, os.Mkdir(authDir, 0755))
	for _, name := range []string{"login.html", "register.html"} {
		err := os.WriteFile(filepath.Join(authDir, name), []byte(`<form>{{.Error}}</form>`), 0644)
		require.NoError(t, err)
	}
	return dir
}

func TestNewAuthController_MissingTemplates(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	// An empty directory has no auth templates; construction must fail
	// instead of deferring the problem to request time.
	_, err := NewAuthController(svc, nil, t.TempDir())

	assert.Error(t, err)
}

func TestRegisterPage_RendersHTML(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc, cleanup := setupService(t)
	defer cleanup()

	ac, err := NewAuthController(svc, nil, writeAuthTemplates(t))
	require.NoError(t, err)

	router := gin.New()
	ac.RegisterRoutes(router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/register", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<form>")
}

func TestLogin_FailureRendersGenericError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc, cleanup := setupService(t)
	defer cleanup()

	ac, err := NewAuthController(svc, nil, writeAuthTemplates(t))
	require.NoError(t, err)

	router := gin.New()
	ac.RegisterRoutes(router)

	form := url.Values{"username": {"nobody"}, "password": {"x"}}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password.")
}
