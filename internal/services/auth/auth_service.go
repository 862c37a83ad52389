package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mediawatch/report-tracking-backend/internal/database/repository"
	"github.com/mediawatch/report-tracking-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db               *gorm.DB
	userRepo         *repository.UserRepository
	groupRepo        *repository.GroupRepository
	analystRepo      *repository.AnalystRepository
	refreshTokenRepo *repository.RefreshTokenRepository
	jwtSecret        []byte
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
}

func NewAuthService(db *gorm.DB) *AuthService {
	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		jwtSecret = []byte("default-secret-key-change-in-production")
	}

	accessTokenTTL := 12 * time.Hour
	if ttl := os.Getenv("ACCESS_TOKEN_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			accessTokenTTL = parsed
		}
	}

	refreshTokenTTL := 7 * 24 * time.Hour // 7 days
	if ttl := os.Getenv("REFRESH_TOKEN_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			refreshTokenTTL = parsed
		}
	}

	return &AuthService{
		db:               db,
		userRepo:         repository.NewUserRepository(db),
		groupRepo:        repository.NewGroupRepository(db),
		analystRepo:      repository.NewAnalystRepository(db),
		refreshTokenRepo: repository.NewRefreshTokenRepository(db),
		jwtSecret:        jwtSecret,
		accessTokenTTL:   accessTokenTTL,
		refreshTokenTTL:  refreshTokenTTL,
	}
}

// Register creates a user in the named role group. The role must resolve
// to an existing group. Every new user is provisioned an analyst profile
// as an explicit step of this flow.
func (s *AuthService) Register(req *models.RegisterRequest) (*models.RegisterResponse, error) {
	groupName, ok := models.GroupNameForRole(req.Role)
	if !ok {
		return nil, errors.New("unrecognized role")
	}
	group, err := s.groupRepo.GetByName(groupName)
	if err != nil {
		return nil, errors.New("role group does not exist")
	}

	exists, err := s.userRepo.CheckUsernameExists(req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, errors.New("username already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
		IsStaff:      groupName == models.GroupAdmins || groupName == models.GroupManagers,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if err := s.userRepo.AddToGroup(user, group); err != nil {
		return nil, fmt.Errorf("failed to assign role group: %w", err)
	}
	if err := s.provisionAnalyst(user); err != nil {
		return nil, err
	}

	user.Groups = []models.Group{*group}
	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &models.RegisterResponse{
		Token:    token,
		Username: user.Username,
		Role:     string(models.ResolveRole(user)),
	}, nil
}

// CreateUser is the admin path for creating users directly
func (s *AuthService) CreateUser(req *models.CreateUserRequest) (*models.User, error) {
	exists, err := s.userRepo.CheckUsernameExists(req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, errors.New("username already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
		IsStaff:      req.IsStaff,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if req.Role != "" {
		groupName, ok := models.GroupNameForRole(req.Role)
		if !ok {
			return nil, errors.New("unrecognized role")
		}
		group, err := s.groupRepo.GetByName(groupName)
		if err != nil {
			return nil, errors.New("role group does not exist")
		}
		if err := s.userRepo.AddToGroup(user, group); err != nil {
			return nil, fmt.Errorf("failed to assign role group: %w", err)
		}
	}
	if err := s.provisionAnalyst(user); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(user.ID)
}

// CreateAnalystUser creates a user account together with its analyst
// profile; the account joins the Analysts group.
func (s *AuthService) CreateAnalystUser(req *models.CreateAnalystRequest) (*models.Analyst, error) {
	user, err := s.CreateUser(&models.CreateUserRequest{
		Username: req.Username,
		Password: req.Password,
		Role:     "analyst",
	})
	if err != nil {
		return nil, err
	}
	return s.analystRepo.GetByUserID(user.ID)
}

// Login exchanges credentials for an access token plus a refresh token
func (s *AuthService) Login(req *models.LoginRequest) (*models.TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if !user.IsActive {
		return nil, errors.New("account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.issueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		logrus.Warnf("Failed to update last login for %s: %v", user.Username, err)
	}

	return &models.TokenResponse{
		Token:        token,
		Username:     user.Username,
		Role:         string(models.ResolveRole(user)),
		UserID:       user.ID,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token
func (s *AuthService) Refresh(refreshToken string) (*models.TokenResponse, error) {
	stored, err := s.refreshTokenRepo.GetByToken(refreshToken)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.refreshTokenRepo.DeleteByToken(refreshToken)
		return nil, errors.New("refresh token expired")
	}
	user, err := s.userRepo.GetByID(stored.UserID)
	if err != nil {
		return nil, errors.New("user not found")
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	return &models.TokenResponse{
		Token:    token,
		Username: user.Username,
		Role:     string(models.ResolveRole(user)),
		UserID:   user.ID,
	}, nil
}

// Logout revokes all refresh tokens for the user
func (s *AuthService) Logout(userID string) error {
	return s.refreshTokenRepo.DeleteByUserID(userID)
}

// ValidateToken parses and validates an access token
func (s *AuthService) ValidateToken(tokenString string) (*models.TokenInfo, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return &models.TokenInfo{
		UserID:    claims.UserID,
		Username:  claims.Username,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// ChangePassword updates the caller's password after verifying the current one
func (s *AuthService) ChangePassword(userID string, req *models.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return errors.New("user not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return errors.New("current password is incorrect")
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashedPassword)
	return s.userRepo.Update(user)
}

// CreateAdminUser bootstraps the superuser account if it does not exist
func (s *AuthService) CreateAdminUser() error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	exists, err := s.userRepo.CheckUsernameExists(username)
	if err != nil {
		return fmt.Errorf("failed to check admin user: %w", err)
	}
	if exists {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "adminpass"
		logrus.Warn("ADMIN_PASSWORD not set, using default password")
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	if group, err := s.groupRepo.GetByName(models.GroupAdmins); err == nil {
		if err := s.userRepo.AddToGroup(user, group); err != nil {
			logrus.Warnf("Failed to add admin user to Admins group: %v", err)
		}
	}
	if err := s.provisionAnalyst(user); err != nil {
		return err
	}
	logrus.Infof("Created admin user %s", username)
	return nil
}

// provisionAnalyst creates the user's one-to-one analyst profile. Invoked
// explicitly by every user-creation flow rather than hidden behind a
// persistence hook.
func (s *AuthService) provisionAnalyst(user *models.User) error {
	if _, err := s.analystRepo.GetByUserID(user.ID); err == nil {
		return nil
	}
	if err := s.analystRepo.Create(&models.Analyst{UserID: user.ID}); err != nil {
		return fmt.Errorf("failed to provision analyst profile: %w", err)
	}
	return nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) issueRefreshToken(userID string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	token := hex.EncodeToString(raw)
	err := s.refreshTokenRepo.Create(&models.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return token, nil
}
