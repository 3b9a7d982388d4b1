package repositories

import "gerai/internal/models"

// TokenRepository is the persisted denylist of revoked refresh tokens.
type TokenRepository interface {
	Blacklist(token *models.BlacklistedToken) error
	IsBlacklisted(jti string) (bool, error)
}
