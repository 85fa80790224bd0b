package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tcu-system/internal/config"
	"tcu-system/internal/database"
	"tcu-system/internal/handlers"
	"tcu-system/internal/models"
	"tcu-system/internal/storage"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	// templates and static dir are loaded relative to the repo root
	cwd, _ := os.Getwd()
	if err := os.Chdir(filepath.Clean(filepath.Join(cwd, "../.."))); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

// newTestApp wires a router against a fresh in-memory database. The DSN is
// unique per test name to avoid leakage via the shared cache.
func newTestApp(t *testing.T) *gin.Engine {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db

	for _, name := range []string{"Estudiante", "Profesor", "Admin"} {
		if err := db.Create(&models.Role{Name: name}).Error; err != nil {
			t.Fatalf("seed role: %v", err)
		}
	}
	for _, name := range []string{models.StatusPending, models.StatusApproved, models.StatusRejected} {
		if err := db.Create(&models.Status{Name: name}).Error; err != nil {
			t.Fatalf("seed status: %v", err)
		}
	}

	uploads, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("upload store: %v", err)
	}
	handlers.Uploads = uploads

	cfg := &config.Config{
		SessionSecret: "test-secret",
		SessionMaxAge: 3600,
		UploadDir:     uploads.Dir,
	}
	return NewRouter(cfg)
}

func createUser(t *testing.T, roleName, email, password string, projectID *uint) models.User {
	t.Helper()

	var role models.Role
	if err := database.DB.Where("name = ?", roleName).First(&role).Error; err != nil {
		t.Fatalf("role %s: %v", roleName, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := models.User{
		RoleID:       role.ID,
		FirstName:    "Test",
		LastName:     strings.Split(email, "@")[0],
		Email:        email,
		PasswordHash: string(hash),
		ProjectID:    projectID,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func createProject(t *testing.T, code, name string, professorID *uint) models.Project {
	t.Helper()
	project := models.Project{Code: code, Name: name, ProfessorID: professorID}
	if err := database.DB.Create(&project).Error; err != nil {
		t.Fatalf("create project %s: %v", code, err)
	}
	return project
}

func login(t *testing.T, r *gin.Engine, email, password string) []*http.Cookie {
	t.Helper()

	form := url.Values{"email": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("login as %s: expected 302 got %d", email, w.Code)
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("login as %s: no session cookie", email)
	}
	return cookies
}

func do(r *gin.Engine, method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
