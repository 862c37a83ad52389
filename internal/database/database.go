package database

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mediawatch/report-tracking-backend/internal/models"
)

// DB is the global database instance
var DB *gorm.DB

// InitDB initializes the database connection and performs migrations
func InitDB() (*gorm.DB, error) {
	host := getEnv("DB_HOST", "")
	port := getEnv("DB_PORT", "")
	user := getEnv("DB_USER", "")
	password := getEnv("DB_PASSWORD", "")
	dbname := getEnv("DB_NAME", "")
	sslmode := getEnv("DB_SSLMODE", "disable")

	if host == "" || port == "" || user == "" || password == "" || dbname == "" {
		return nil, fmt.Errorf("missing required database environment variables. Please check your .env file")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	gormLogger := logger.New(
		logrus.New(),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Error,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	DB = db

	logrus.Info("Database connection established and migrations completed")
	return db, nil
}

// Migrate creates the schema and seeds the default role groups. Split out
// of InitDB so tests can run it against their own store.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.RefreshToken{},
		&models.Client{},
		&models.Station{},
		&models.Campaign{},
		&models.MonitoringPeriod{},
		&models.Analyst{},
		&models.Assignment{},
		&models.Notification{},
		&models.Message{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Seed default groups used by the authorization policy
	for _, name := range []string{
		models.GroupAdmins,
		models.GroupManagers,
		models.GroupAnalysts,
		models.GroupAccountants,
	} {
		var count int64
		if err := db.Model(&models.Group{}).Where("name = ?", name).Count(&count).Error; err != nil {
			logrus.Warnf("Failed to check if %s group exists: %v", name, err)
			continue
		}
		if count == 0 {
			if err := db.Create(&models.Group{Name: name}).Error; err != nil {
				logrus.Warnf("Failed to create %s group: %v", name, err)
			} else {
				logrus.Infof("Created default group %s", name)
			}
		}
	}

	return nil
}

// GetDB returns the global database instance
func GetDB() *gorm.DB {
	return DB
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
