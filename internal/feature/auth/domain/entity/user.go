// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Auth providers a user account can originate from.
const (
	ProviderLocal    = "local"
	ProviderSupabase = "supabase"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents one person's account. A user is created either by local
// signup (password + OTP verification) or on first successful validation of
// an external identity provider token; the reconciler guarantees at most one
// User per person regardless of which path created it.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// AuthProvider records which identity system owns the credentials:
	// ProviderLocal (password) or ProviderSupabase (external provider).
	AuthProvider string `gorm:"size:16;not null;default:local" json:"authProvider"`

	// SupabaseID is the external provider's user id. It is unique when
	// present; a nil pointer keeps the uniqueness sparse so local-only
	// accounts do not collide on the index.
	SupabaseID *string `gorm:"uniqueIndex;size:64" json:"supabaseId,omitempty"`

	FirstName string `gorm:"size:50;not null" json:"firstName"`
	LastName  string `gorm:"size:50;not null" json:"lastName"`

	// Email is unique across all users, stored lowercased and trimmed.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Password is the bcrypt hash (cost 12). Present only for local
	// accounts and never serialized.
	Password string `gorm:"size:255" json:"-"`

	Avatar *string `gorm:"size:512" json:"avatar,omitempty"`

	// Role is either RoleUser or RoleAdmin.
	Role string `gorm:"size:16;not null;default:user" json:"role"`

	IsActive      bool `gorm:"not null;default:true" json:"isActive"`
	EmailVerified bool `gorm:"not null;default:false" json:"emailVerified"`

	// OTPCode and OTPExpires hold the pending signup verification code.
	// Cleared once the OTP is confirmed.
	OTPCode    *string    `gorm:"size:6" json:"-"`
	OTPExpires *time.Time `json:"-"`

	// IsTempUser stays true from local signup until the OTP is confirmed.
	IsTempUser bool `gorm:"not null;default:false" json:"isTempUser"`

	PasswordResetToken   *string    `gorm:"size:64" json:"-"`
	PasswordResetExpires *time.Time `json:"-"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`

	SubscribeNewsletter bool `gorm:"not null;default:false" json:"subscribeNewsletter"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicProfile is the client-safe projection of a User.
type PublicProfile struct {
	ID                  uint       `json:"id"`
	FirstName           string     `json:"firstName"`
	LastName            string     `json:"lastName"`
	Email               string     `json:"email"`
	Avatar              *string    `json:"avatar"`
	Role                string     `json:"role"`
	IsActive            bool       `json:"isActive"`
	EmailVerified       bool       `json:"emailVerified"`
	LastLogin           *time.Time `json:"lastLogin"`
	SubscribeNewsletter bool       `json:"subscribeNewsletter"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// Public returns the user data safe to hand to clients. Credential material
// and verification tokens are never included.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:                  u.ID,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Email:               u.Email,
		Avatar:              u.Avatar,
		Role:                u.Role,
		IsActive:            u.IsActive,
		EmailVerified:       u.EmailVerified,
		LastLogin:           u.LastLogin,
		SubscribeNewsletter: u.SubscribeNewsletter,
		CreatedAt:           u.CreatedAt,
	}
}
