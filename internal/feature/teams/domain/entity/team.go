// Package entity defines the domain entities for the teams feature.
package entity

import "time"

// Team is a public community team page.
type Team struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Slug        string `gorm:"uniqueIndex;size:200;not null" json:"slug"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"size:3000;not null" json:"description"`
	Color       string `gorm:"size:64;not null" json:"color"`
	Icon        string `gorm:"size:128;not null" json:"icon"`
	IsActive    bool   `gorm:"not null;default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TeamWithCount decorates a team with the number of active members,
// computed per request and never persisted.
type TeamWithCount struct {
	Team
	MembersCount int64 `json:"membersCount"`
}

// TeamMember is one person shown on a team page, ordered by DisplayOrder.
type TeamMember struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	TeamID    uint    `gorm:"not null;index" json:"teamId"`
	FirstName string  `gorm:"size:100;not null" json:"firstName"`
	LastName  string  `gorm:"size:100;not null" json:"lastName"`
	Role      string  `gorm:"size:200;not null" json:"role"`
	LinkedIn  *string `gorm:"size:512" json:"linkedin"`
	Image     *string `gorm:"size:512" json:"image"`

	DisplayOrder int  `gorm:"not null;default:0" json:"order"`
	IsActive     bool `gorm:"not null;default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
