package services

import (
	"testing"
	"time"

	"github.com/mediawatch/report-tracking-backend/internal/database"
	"github.com/mediawatch/report-tracking-backend/internal/database/repository"
	"github.com/mediawatch/report-tracking-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A pooled second connection would see a different in-memory database
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createUserInGroup(t *testing.T, db *gorm.DB, username, groupName string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		PasswordHash: "x",
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	if groupName != "" {
		group, err := repository.NewGroupRepository(db).GetByName(groupName)
		if err != nil {
			t.Fatalf("group %s not found: %v", groupName, err)
		}
		if err := repository.NewUserRepository(db).AddToGroup(user, group); err != nil {
			t.Fatalf("failed to add %s to %s: %v", username, groupName, err)
		}
	}
	return user
}

func createAnalystUser(t *testing.T, db *gorm.DB, username string) (*models.User, *models.Analyst) {
	t.Helper()
	user := createUserInGroup(t, db, username, models.GroupAnalysts)
	analyst := &models.Analyst{UserID: user.ID}
	if err := db.Create(analyst).Error; err != nil {
		t.Fatalf("failed to create analyst profile: %v", err)
	}
	return user, analyst
}

func createCampaign(t *testing.T, db *gorm.DB, name string) *models.Campaign {
	t.Helper()
	client := &models.Client{Name: name + " client"}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	campaign := &models.Campaign{
		ClientID: client.ID,
		Name:     name,
		Status:   models.CampaignStatusActive,
	}
	if err := db.Create(campaign).Error; err != nil {
		t.Fatalf("failed to create campaign: %v", err)
	}
	return campaign
}

func createStation(t *testing.T, db *gorm.DB, name string) *models.Station {
	t.Helper()
	station := &models.Station{Name: name}
	if err := db.Create(station).Error; err != nil {
		t.Fatalf("failed to create station: %v", err)
	}
	return station
}

func notificationsFor(t *testing.T, db *gorm.DB, userID string) []*models.Notification {
	t.Helper()
	notifications, err := repository.NewNotificationRepository(db).GetByUserID(userID)
	if err != nil {
		t.Fatalf("failed to load notifications: %v", err)
	}
	return notifications
}

func daysAgo(n int) *time.Time {
	d := time.Now().AddDate(0, 0, -n)
	return &d
}
