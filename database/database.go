package database

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"warbler/models"
)

// Connect opens the database selected by the environment: postgres when
// DB_HOST is set, otherwise a local sqlite file (DATABASE, default
// ./warbler.db). Environment variables are read from a .env file when one
// exists.
func Connect() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	if host := os.Getenv("DB_HOST"); host != "" {
		return connectPostgres(host)
	}

	path := os.Getenv("DATABASE")
	if path == "" {
		path = "./warbler.db"
	}
	return OpenSQLite(path)
}

func connectPostgres(host string) (*gorm.DB, error) {
	port, _ := strconv.Atoi(os.Getenv("DB_PORT"))
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=require",
		host, port, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	return db, Migrate(db)
}

// OpenSQLite opens and migrates a sqlite database. The _fk pragma turns on
// foreign key enforcement, which sqlite leaves off by default; without it the
// messages.user_id constraint is never checked.
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?_fk=1", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	return db, Migrate(db)
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.Follows{},
		&models.Like{},
	)
}
