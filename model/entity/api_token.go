package entity

import "time"

// APIToken is a bearer token accepted by the /api group when AUTH_TYPE=token.
type APIToken struct {
	ID        uint       `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string     `gorm:"column:name;type:varchar(255);not null"`
	Token     string     `gorm:"column:token;type:varchar(64);not null;uniqueIndex"`
	Revoked   bool       `gorm:"column:revoked;not null;default:false"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (APIToken) TableName() string {
	return "api_token"
}
