package models

import "time"

// BlacklistedToken is one revoked refresh token, keyed by its JTI claim.
// Access tokens are never blacklisted; they expire naturally.
type BlacklistedToken struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	JTI           string    `json:"jti" gorm:"uniqueIndex;type:varchar(36)"`
	UserID        string    `json:"user_id" gorm:"type:varchar(36);index"`
	ExpiresAt     time.Time `json:"expires_at"`
	BlacklistedAt time.Time `json:"blacklisted_at" gorm:"autoCreateTime"`
}
