package repositories

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"warbler/database"
	"warbler/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	return db
}

func seedUser(t *testing.T, users UserRepository, username, email string) *models.User {
	t.Helper()
	user, err := users.Signup(username, email, "password123", "")
	if err != nil {
		t.Fatalf("signup %s: %v", username, err)
	}
	return user
}

func seedMessage(t *testing.T, messages MessageRepository, authorID uint, text string) *models.Message {
	t.Helper()
	message, err := messages.Post(authorID, text)
	if err != nil {
		t.Fatalf("post %q: %v", text, err)
	}
	return message
}
