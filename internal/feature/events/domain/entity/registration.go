package entity

import "time"

// Registration is one fact in the event registration ledger: "this provider
// user registered for this event". The composite unique index on
// (event_id, user_supabase_id) is the duplicate guard; the store enforces
// it, not application code, so concurrent registrations cannot double count.
type Registration struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EventID        uint   `gorm:"not null;index;uniqueIndex:idx_event_user" json:"eventId"`
	UserSupabaseID string `gorm:"size:64;not null;index;uniqueIndex:idx_event_user" json:"userSupabaseId"`

	// Name and email snapshot taken at registration time.
	FirstName string `gorm:"size:100" json:"firstName,omitempty"`
	LastName  string `gorm:"size:100" json:"lastName,omitempty"`
	UserEmail string `gorm:"size:255;not null" json:"userEmail"`
	UserName  string `gorm:"size:200" json:"userName,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName keeps the ledger table name explicit.
func (Registration) TableName() string { return "event_registrations" }
