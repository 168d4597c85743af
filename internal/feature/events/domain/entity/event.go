// Package entity defines the domain entities for the events feature.
package entity

import "time"

// Event modes.
const (
	ModeOnline  = "Online"
	ModeOffline = "Offline"
	ModeHybrid  = "Hybrid"
)

// Event is a schedulable community activity.
//
// RegisteredCount is denormalized: it must always equal the number of
// Registration rows referencing this event. The register flow keeps the two
// in sync with a compensating delete because the ledger insert and the
// counter increment are separate writes.
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Slug        string    `gorm:"uniqueIndex;size:200;not null" json:"slug"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"size:2000;not null" json:"description"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Time        string    `gorm:"size:32;not null" json:"time"`
	Mode        string    `gorm:"size:16;not null" json:"mode"`
	Location    string    `gorm:"size:255;not null" json:"location"`
	Image       string    `gorm:"size:512;not null" json:"image"`

	RegisteredCount int `gorm:"not null;default:0" json:"registeredCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidMode reports whether mode is one of the allowed event modes.
func ValidMode(mode string) bool {
	switch mode {
	case ModeOnline, ModeOffline, ModeHybrid:
		return true
	}
	return false
}

// EventWithStatus decorates an Event with the caller's registration status
// for personalized listings.
type EventWithStatus struct {
	Event
	HasRegistered bool `json:"hasRegistered"`
}
