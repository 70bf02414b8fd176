package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"rentalmanager/internal/models"
)

var ErrNotFound = errors.New("record not found")

type Database struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewDatabase(dbPath string, logger *logrus.Logger) (*Database, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %v", err)
		}
	}

	return open(dbPath+"?_foreign_keys=on", logger)
}

// NewTestDB opens a private in-memory database.
func NewTestDB() (*Database, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return open(":memory:", logger)
}

func open(dsn string, logger *logrus.Logger) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	// every connection to :memory: is a separate database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return &Database{db: db, logger: logger}, nil
}

// MigrateSchema creates or updates the tables of every entity.
func (d *Database) MigrateSchema() error {
	err := d.db.AutoMigrate(
		&models.Property{},
		&models.Room{},
		&models.Tenant{},
		&models.Contract{},
		&models.Invoice{},
		&models.Payment{},
		&models.ExtraFee{},
		&models.UtilityMeter{},
		&models.UtilityMeterReading{},
		&models.User{},
		&Credential{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %v", err)
	}
	d.logger.Info("Database schema is up to date")
	return nil
}

// DB returns the underlying gorm handle.
func (d *Database) DB() *gorm.DB {
	return d.db
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
