package repository

import (
	"testing"

	"github.com/mediawatch/report-tracking-backend/internal/database"
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
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x", IsActive: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestMarkAllReadOnlyTouchesOwner(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")
	repo := NewNotificationRepository(db)

	for i := 0; i < 3; i++ {
		if err := repo.Create(&models.Notification{UserID: owner.ID, Message: "m"}); err != nil {
			t.Fatalf("failed to create notification: %v", err)
		}
	}
	if err := repo.Create(&models.Notification{UserID: other.ID, Message: "m"}); err != nil {
		t.Fatalf("failed to create notification: %v", err)
	}

	updated, err := repo.MarkAllRead(owner.ID)
	if err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}
	if updated != 3 {
		t.Errorf("expected 3 rows updated, got %d", updated)
	}

	ownerRows, _ := repo.GetByUserID(owner.ID)
	for _, n := range ownerRows {
		if !n.Read {
			t.Error("owner notification left unread")
		}
	}
	otherRows, _ := repo.GetByUserID(other.ID)
	if len(otherRows) != 1 || otherRows[0].Read {
		t.Error("other user's notifications must be untouched")
	}

	// Second pass is a no-op
	updated, err = repo.MarkAllRead(owner.ID)
	if err != nil {
		t.Fatalf("second MarkAllRead failed: %v", err)
	}
	if updated != 0 {
		t.Errorf("expected 0 rows on second pass, got %d", updated)
	}
}

func TestSetRead(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "reader")
	repo := NewNotificationRepository(db)

	n := &models.Notification{UserID: owner.ID, Message: "m"}
	if err := repo.Create(n); err != nil {
		t.Fatalf("failed to create notification: %v", err)
	}

	if err := repo.SetRead(n.ID, true); err != nil {
		t.Fatalf("SetRead failed: %v", err)
	}
	stored, err := repo.GetByID(n.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !stored.Read {
		t.Error("notification should be read")
	}

	if err := repo.SetRead(n.ID, false); err != nil {
		t.Fatalf("SetRead failed: %v", err)
	}
	stored, _ = repo.GetByID(n.ID)
	if stored.Read {
		t.Error("notification should be unread again")
	}
}
