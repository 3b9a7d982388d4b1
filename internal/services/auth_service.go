package services

import (
	"errors"
	"fmt"
	"time"
	"unicode"

	"gerai/internal/models"
	"gerai/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login, the token lifecycle, profile
// updates and user statistics.
type AuthService struct {
	userRepo   repositories.UserRepository
	tokenRepo  repositories.TokenRepository
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, tokenRepo repositories.TokenRepository, jwtSecret string, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// TokenPair is the access/refresh pair issued on login and registration.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisterInput carries the registration payload. Role flags are pointers so
// an omitted flag falls back to the customer default.
type RegisterInput struct {
	Email       string
	Username    string
	Password    string
	Password2   string
	FirstName   string
	LastName    string
	PhoneNumber string
	Address     string
	IsCustomer  *bool
	IsMerchant  *bool
}

// validatePassword applies the password strength policy. An empty string
// result means the password is acceptable.
func validatePassword(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters."
	}
	numeric := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			numeric = false
			break
		}
	}
	if numeric {
		return "Password cannot be entirely numeric."
	}
	return ""
}

// Register creates a user and treats the registration as an implicit login,
// returning a token pair. Validation runs in a fixed order: password match,
// strength, email uniqueness, username uniqueness; the first failure wins.
func (s *AuthService) Register(in RegisterInput) (*models.User, *TokenPair, error) {
	if in.Password != in.Password2 {
		return nil, nil, FieldErrors{"password": "Password fields didn't match."}
	}
	if msg := validatePassword(in.Password); msg != "" {
		return nil, nil, FieldErrors{"password": msg}
	}
	if _, err := s.userRepo.GetByEmail(in.Email); err == nil {
		return nil, nil, FieldErrors{"email": "A user with this email already exists."}
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, nil, fmt.Errorf("failed to check email: %w", err)
	}
	if _, err := s.userRepo.GetByUsername(in.Username); err == nil {
		return nil, nil, FieldErrors{"username": "A user with this username already exists."}
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:       in.Email,
		Username:    in.Username,
		Password:    string(hashed),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address,
		IsCustomer:  true,
		IsMerchant:  false,
		IsActive:    true,
	}
	if in.IsCustomer != nil {
		user.IsCustomer = *in.IsCustomer
	}
	if in.IsMerchant != nil {
		user.IsMerchant = *in.IsMerchant
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, nil, fmt.Errorf("failed to register user: %w", err)
	}

	pair, err := s.GenerateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login authenticates by email or username. The email lookup runs first and
// wins when both could match. Failures are collapsed into
// ErrInvalidCredentials except for a disabled account.
func (s *AuthService) Login(identifier, password string) (*models.User, *TokenPair, error) {
	user, err := s.userRepo.GetByEmail(identifier)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, fmt.Errorf("failed to look up user: %w", err)
		}
		user, err = s.userRepo.GetByUsername(identifier)
		if err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				return nil, nil, fmt.Errorf("failed to look up user: %w", err)
			}
			return nil, nil, ErrInvalidCredentials
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrAccountDisabled
	}

	pair, err := s.GenerateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// GenerateTokenPair mints a short-lived access token and a refresh token
// carrying a JTI for later revocation.
func (s *AuthService) GenerateTokenPair(user *models.User) (*TokenPair, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"token_type": "access",
		"user_id":    user.ID,
		"username":   user.Username,
		"is_staff":   user.IsStaff,
		"exp":        now.Add(s.accessTTL).Unix(),
		"iat":        now.Unix(),
	})
	accessString, err := access.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"token_type": "refresh",
		"user_id":    user.ID,
		"jti":        uuid.New().String(),
		"exp":        now.Add(s.refreshTTL).Unix(),
		"iat":        now.Unix(),
	})
	refreshString, err := refresh.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{Access: accessString, Refresh: refreshString}, nil
}

func (s *AuthService) parseToken(tokenString, wantType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims["token_type"] != wantType {
		return nil, fmt.Errorf("%w: wrong token type", ErrInvalidToken)
	}
	return claims, nil
}

// ValidateAccessToken parses and validates an access token, returning its
// claims. Used by the auth middleware on every protected request.
func (s *AuthService) ValidateAccessToken(tokenString string) (jwt.MapClaims, error) {
	return s.parseToken(tokenString, "access")
}

// Refresh mints a new access token from a valid, non-blacklisted refresh
// token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := s.parseToken(refreshToken, "refresh")
	if err != nil {
		return "", err
	}

	jti, _ := claims["jti"].(string)
	revoked, err := s.tokenRepo.IsBlacklisted(jti)
	if err != nil {
		return "", fmt.Errorf("failed to check blacklist: %w", err)
	}
	if revoked {
		return "", fmt.Errorf("%w: token is blacklisted", ErrInvalidToken)
	}

	userID, _ := claims["user_id"].(string)
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", fmt.Errorf("%w: unknown user", ErrInvalidToken)
	}
	if !user.IsActive {
		return "", fmt.Errorf("%w: account disabled", ErrInvalidToken)
	}

	now := time.Now()
	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"token_type": "access",
		"user_id":    user.ID,
		"username":   user.Username,
		"is_staff":   user.IsStaff,
		"exp":        now.Add(s.accessTTL).Unix(),
		"iat":        now.Unix(),
	})
	accessString, err := access.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return accessString, nil
}

// Logout blacklists the submitted refresh token. The caller's access token
// stays valid until its own expiry; only refreshing is cut off.
func (s *AuthService) Logout(refreshToken string) error {
	claims, err := s.parseToken(refreshToken, "refresh")
	if err != nil {
		return err
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return fmt.Errorf("%w: missing jti", ErrInvalidToken)
	}
	revoked, err := s.tokenRepo.IsBlacklisted(jti)
	if err != nil {
		return fmt.Errorf("failed to check blacklist: %w", err)
	}
	if revoked {
		return fmt.Errorf("%w: token is blacklisted", ErrInvalidToken)
	}

	userID, _ := claims["user_id"].(string)
	var expiresAt time.Time
	if exp, ok := claims["exp"].(float64); ok {
		expiresAt = time.Unix(int64(exp), 0)
	}
	return s.tokenRepo.Blacklist(&models.BlacklistedToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
	})
}

// GetProfile retrieves the caller's own user record.
func (s *AuthService) GetProfile(userID string) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// ProfileUpdate carries a partial profile update; nil fields are left
// untouched, which gives PUT and PATCH the same implementation.
type ProfileUpdate struct {
	FirstName    *string
	LastName     *string
	PhoneNumber  *string
	Address      *string
	ProfileImage *string
	IsCustomer   *bool
	IsMerchant   *bool
}

// UpdateProfile applies a partial update to the caller's own profile.
func (s *AuthService) UpdateProfile(userID string, in ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = *in.PhoneNumber
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.ProfileImage != nil {
		user.ProfileImage = *in.ProfileImage
	}
	if in.IsCustomer != nil {
		user.IsCustomer = *in.IsCustomer
	}
	if in.IsMerchant != nil {
		user.IsMerchant = *in.IsMerchant
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the caller's current password and replaces it.
// Existing tokens are not invalidated.
func (s *AuthService) ChangePassword(userID, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return FieldErrors{"old_password": "Old password is not correct"}
	}
	if msg := validatePassword(newPassword); msg != "" {
		return FieldErrors{"new_password": msg}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	return s.userRepo.Update(user)
}

// UserStats is the admin-only registration summary.
type UserStats struct {
	TotalUsers           int64         `json:"total_users"`
	UsersCreatedToday    int64         `json:"users_created_today"`
	UsersCreatedThisWeek int64         `json:"users_created_this_week"`
	RecentUsers          []models.User `json:"recent_users"`
}

// Stats returns user counts for today and the trailing week plus the ten
// most recent registrations.
func (s *AuthService) Stats() (*UserStats, error) {
	total, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.userRepo.CountCreatedSince(startOfDay)
	if err != nil {
		return nil, err
	}
	week, err := s.userRepo.CountCreatedSince(now.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	recent, err := s.userRepo.GetRecent(10)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		TotalUsers:           total,
		UsersCreatedToday:    today,
		UsersCreatedThisWeek: week,
		RecentUsers:          recent,
	}, nil
}
