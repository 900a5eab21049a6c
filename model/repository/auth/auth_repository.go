package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	entity "catalog.GO/model/entity"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// FindActiveToken returns a non-revoked, unexpired token by its token string.
func (r *AuthRepository) FindActiveToken(ctx context.Context, token string) (*entity.APIToken, error) {
	var t entity.APIToken
	err := r.db.WithContext(ctx).
		Where("token = ? AND revoked = ?", token, false).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// IssueToken creates a random token for name, valid for ttl (0 = no expiry).
func (r *AuthRepository) IssueToken(ctx context.Context, name string, ttl time.Duration) (*entity.APIToken, error) {
	t := &entity.APIToken{
		Name:  name,
		Token: uuid.NewString(),
	}
	if ttl > 0 {
		exp := time.Now().Add(ttl)
		t.ExpiresAt = &exp
	}
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// RevokeToken marks token as revoked. Returns gorm.ErrRecordNotFound if it does not exist.
func (r *AuthRepository) RevokeToken(ctx context.Context, token string) error {
	res := r.db.WithContext(ctx).Model(&entity.APIToken{}).Where("token = ?", token).Update("revoked", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
