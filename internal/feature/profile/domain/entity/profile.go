// Package entity defines the domain entities for the profile feature.
package entity

import (
	"strings"
	"time"
)

// Divisions a profile can belong to.
const (
	DivisionGIA = "GIA"
	DivisionSFI = "SFI"
)

// UserProfile is the supplemental one-to-one profile for a user.
type UserProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"userId"`

	FullName           string  `gorm:"size:100;not null" json:"fullName"`
	ProfileImage       *string `gorm:"size:512" json:"profileImage"`
	CloudinaryPublicID *string `gorm:"size:255" json:"-"`

	// PRNNumber is the institution-issued registration number,
	// 6-20 alphanumeric characters, unique across profiles.
	PRNNumber string `gorm:"column:prn_number;uniqueIndex;size:20;not null" json:"prnNumber"`

	Class    string `gorm:"size:50;not null" json:"class"`
	Division string `gorm:"size:8;not null" json:"division"`
	Bio      string `gorm:"size:500" json:"bio"`

	IsProfileComplete bool `gorm:"not null;default:false" json:"isProfileComplete"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RecomputeComplete derives IsProfileComplete from the required fields.
// Called before every save so the flag can never drift from the data.
func (p *UserProfile) RecomputeComplete() {
	p.IsProfileComplete = strings.TrimSpace(p.FullName) != "" &&
		strings.TrimSpace(p.PRNNumber) != "" &&
		strings.TrimSpace(p.Class) != "" &&
		strings.TrimSpace(p.Division) != ""
}

// ValidDivision reports whether division is one of the allowed values.
func ValidDivision(division string) bool {
	return division == DivisionGIA || division == DivisionSFI
}
