package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mediawatch/report-tracking-backend/internal/database"
	"github.com/mediawatch/report-tracking-backend/internal/database/repository"
	"github.com/mediawatch/report-tracking-backend/internal/models"

	"github.com/gin-gonic/gin"
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

// authAs stands in for the bearer middleware and primes the request
// context with an already-authenticated user
func authAs(db *gorm.DB, userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := repository.NewUserRepository(db).GetByID(userID)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("role", models.ResolveRole(user))
		c.Next()
	}
}

func createUserInGroup(t *testing.T, db *gorm.DB, username, groupName string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x", IsActive: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	group, err := repository.NewGroupRepository(db).GetByName(groupName)
	if err != nil {
		t.Fatalf("group %s not found: %v", groupName, err)
	}
	if err := repository.NewUserRepository(db).AddToGroup(user, group); err != nil {
		t.Fatalf("failed to add %s to %s: %v", username, groupName, err)
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
	campaign := &models.Campaign{ClientID: client.ID, Name: name, Status: models.CampaignStatusActive}
	if err := db.Create(campaign).Error; err != nil {
		t.Fatalf("failed to create campaign: %v", err)
	}
	return campaign
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
