package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	IsActive     bool      `gorm:"default:true"             json:"is_active"`
	IsAdmin      bool      `gorm:"default:false"            json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasPerm reports whether the user holds the named permission. Permissions
// are all-or-nothing: admins hold every one, everybody else holds none.
func (u *User) HasPerm(perm string) bool {
	return u.IsAdmin
}

// IsStaff is an alias for the admin flag.
func (u *User) IsStaff() bool {
	return u.IsAdmin
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null"                 json:"name"`
}

type Rating struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"                   json:"id"`
	Rating      float64   `gorm:"not null;check:rating >= 0 AND rating <= 5" json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedByID uint      `gorm:"index;not null" json:"created_by"`
	CreatedBy   User      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"-"`
}

// Review carries no submitting user, matching the stored shape it was
// ported from.
type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Review    string    `gorm:"not null"                 json:"review"`
	CreatedAt time.Time `json:"created_at"`
}

type Item struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string   `gorm:"not null"                 json:"name"`
	Description *string  `json:"description"`
	Price       float64  `gorm:"not null"                 json:"price"`
	CategoryID  uint     `gorm:"index;not null"           json:"category"`
	Category    Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
	// Single-row references: an item aggregates at most one rating and one
	// review directly.
	RatingID  *uint   `json:"ratings"`
	Rating    *Rating `gorm:"foreignKey:RatingID" json:"-"`
	ReviewID  *uint   `json:"reviews"`
	Review    *Review `gorm:"foreignKey:ReviewID" json:"-"`
	VariantID *uint   `json:"variants"`
	Variant   *Item   `gorm:"foreignKey:VariantID" json:"-"`
}

type Order struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedByID uint      `gorm:"index;not null" json:"created_by"`
	CreatedBy   User      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"-"`
	ItemID      uint      `gorm:"not null" json:"item"`
	Item        Item      `gorm:"foreignKey:ItemID" json:"-"`
}

// RefreshToken is the revocation record for issued refresh tokens. Only the
// sha256 of the token is stored.
type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"           json:"id"`
	TokenHash string `gorm:"unique;not null"      json:"-"`
	JTI       string `gorm:"uniqueIndex;not null" json:"jti"`
	UserID    uint   `gorm:"index;not null"       json:"user_id"`
	ExpiresAt int64  `gorm:"not null"             json:"expires_at"`
	Revoked   bool   `gorm:"default:false"        json:"revoked"`
}
