package postgres

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/VitaminP8/blogql/internal/config"
	"github.com/VitaminP8/blogql/models"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// pgUniqueViolation - SQLSTATE unique_violation
const pgUniqueViolation = "23505"

// InitDB открывает соединение с PostgreSQL или SQLite (в зависимости от cfg.Storage)
// и приводит схему к актуальному виду.
func InitDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Storage {
	case config.StoragePostgres:
		db, err = gorm.Open("postgres", cfg.DB.DSN())
	case config.StorageSQLite:
		db, err = gorm.Open("sqlite3", cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("storage %q is not backed by a database", cfg.Storage)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	db.LogMode(cfg.LogLevel == "debug")

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("connected to the database", zap.String("dialect", db.Dialect().GetName()))
	return db, nil
}

// Migrate создает/дополняет таблицы users, profiles, posts
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&models.User{}, &models.Profile{}, &models.Post{}).Error
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// CloseDB закрывает соединение с базой данных
func CloseDB(db *gorm.DB, logger *zap.Logger) error {
	if db == nil {
		return nil
	}

	err := db.Close()
	if err != nil {
		return fmt.Errorf("failed to close the database connection: %w", err)
	}

	logger.Info("database connection closed")
	return nil
}

// parseID переводит строковый ID API в первичный ключ; мусор считается несуществующей записью
func parseID(id string) (uint, bool) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// isUniqueViolation распознает нарушение уникального индекса в PostgreSQL и SQLite
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
