package auth

import (
	"testing"

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
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(db)

	resp, err := service.Register(&models.RegisterRequest{
		Username: "abebe",
		Password: "secret123",
		Role:     "analyst",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.Token == "" {
		t.Error("registration should return a token")
	}
	if resp.Role != "analyst" {
		t.Errorf("expected role analyst, got %s", resp.Role)
	}

	// An analyst registration provisions the profile
	user, err := repository.NewUserRepository(db).GetByUsername("abebe")
	if err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if _, err := repository.NewAnalystRepository(db).GetByUserID(user.ID); err != nil {
		t.Errorf("expected analyst profile for registered analyst: %v", err)
	}

	login, err := service.Login(&models.LoginRequest{Username: "abebe", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.Token == "" || login.RefreshToken == "" {
		t.Error("login should return access and refresh tokens")
	}
	if login.Role != "analyst" {
		t.Errorf("login role mismatch: %s", login.Role)
	}

	if _, err := service.Login(&models.LoginRequest{Username: "abebe", Password: "wrong"}); err == nil {
		t.Error("wrong password must be rejected")
	}
}

func TestRegisterRejectsUnknownRoleAndDuplicates(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(db)

	if _, err := service.Register(&models.RegisterRequest{
		Username: "x", Password: "secret123", Role: "janitor",
	}); err == nil {
		t.Error("unknown role must be rejected")
	}

	if _, err := service.Register(&models.RegisterRequest{
		Username: "dup", Password: "secret123", Role: "manager",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := service.Register(&models.RegisterRequest{
		Username: "dup", Password: "secret123", Role: "manager",
	}); err == nil {
		t.Error("duplicate username must be rejected")
	}
}

func TestValidateToken(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(db)

	resp, err := service.Register(&models.RegisterRequest{
		Username: "checker", Password: "secret123", Role: "accountant",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	info, err := service.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if info.Username != "checker" {
		t.Errorf("token claims username mismatch: %s", info.Username)
	}

	if _, err := service.ValidateToken("not-a-token"); err == nil {
		t.Error("garbage token must be rejected")
	}
}

func TestRefreshAndLogout(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(db)

	if _, err := service.Register(&models.RegisterRequest{
		Username: "refresher", Password: "secret123", Role: "manager",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	login, err := service.Login(&models.LoginRequest{Username: "refresher", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	refreshed, err := service.Refresh(login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if refreshed.Token == "" {
		t.Error("refresh should return a new access token")
	}

	if err := service.Logout(login.UserID); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := service.Refresh(login.RefreshToken); err == nil {
		t.Error("refresh token must be revoked after logout")
	}
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(db)

	if _, err := service.Register(&models.RegisterRequest{
		Username: "rotator", Password: "oldpass1", Role: "analyst",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	user, err := repository.NewUserRepository(db).GetByUsername("rotator")
	if err != nil {
		t.Fatalf("failed to load user: %v", err)
	}

	if err := service.ChangePassword(user.ID, &models.ChangePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "newpass1",
	}); err == nil {
		t.Error("wrong current password must be rejected")
	}

	if err := service.ChangePassword(user.ID, &models.ChangePasswordRequest{
		CurrentPassword: "oldpass1", NewPassword: "newpass1",
	}); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}
	if _, err := service.Login(&models.LoginRequest{Username: "rotator", Password: "newpass1"}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
}

func TestCreateAdminUser(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(db)

	if err := service.CreateAdminUser(); err != nil {
		t.Fatalf("CreateAdminUser failed: %v", err)
	}
	user, err := repository.NewUserRepository(db).GetByUsername("admin")
	if err != nil {
		t.Fatalf("admin user missing: %v", err)
	}
	if !user.IsSuperuser {
		t.Error("bootstrap admin should be a superuser")
	}
	if models.ResolveRole(user) != models.RoleAdmin {
		t.Errorf("expected admin role, got %s", models.ResolveRole(user))
	}

	// Idempotent on restart
	if err := service.CreateAdminUser(); err != nil {
		t.Fatalf("second CreateAdminUser failed: %v", err)
	}
}
