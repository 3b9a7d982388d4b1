package repositories

import (
	"fmt"

	"gerai/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTokenRepository is a GORM implementation of TokenRepository.
type GORMTokenRepository struct {
	db *gorm.DB
}

// NewGORMTokenRepository creates a new instance of GORMTokenRepository.
func NewGORMTokenRepository(db *gorm.DB) *GORMTokenRepository {
	return &GORMTokenRepository{db: db}
}

// Blacklist records a refresh token's JTI as revoked. Revoking the same
// token twice fails on the unique index.
func (r *GORMTokenRepository) Blacklist(token *models.BlacklistedToken) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if err := r.db.Create(token).Error; err != nil {
		return fmt.Errorf("failed to blacklist token %s: %w", token.JTI, err)
	}
	return nil
}

// IsBlacklisted reports whether a JTI has been revoked.
func (r *GORMTokenRepository) IsBlacklisted(jti string) (bool, error) {
	var n int64
	err := r.db.Model(&models.BlacklistedToken{}).Where("jti = ?", jti).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist for %s: %w", jti, err)
	}
	return n > 0, nil
}
