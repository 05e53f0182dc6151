package models

import "time"

// User is the persisted account record. The Password field holds a bcrypt
// hash and is never serialized; callers returning a User to the outside
// should still call Scrubbed first.
type User struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:120" json:"name"`
	Username  string    `gorm:"uniqueIndex;size:120;not null" json:"username"`
	Password  string    `gorm:"size:255" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func (User) TableName() string { return "users" }

// Scrubbed returns a copy safe to hand to external callers.
func (u User) Scrubbed() User {
	u.Password = ""
	return u
}

// Session maps an opaque bearer token (ID) to a user. A nil or past
// ExpiresAt means the session is dead even if the row still exists.
type Session struct {
	ID        string     `gorm:"primaryKey;size:64" json:"id"`
	UserID    string     `gorm:"index;size:64;not null" json:"userId"`
	ExpiresAt *time.Time `gorm:"index" json:"expiresAt"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Session) TableName() string { return "sessions" }

// Expired reports whether the session must be treated as absent.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt == nil || s.ExpiresAt.Before(now)
}

// Media is one stored object. CloudURL is the canonical backing-store
// address; CloudfrontURL is a cached derived public URL, backfilled lazily.
type Media struct {
	ID            string    `gorm:"primaryKey;size:64" json:"id"`
	MediaType     string    `gorm:"size:16;not null" json:"mediaType"`
	CloudURL      string    `gorm:"not null" json:"cloudUrl"`
	CloudfrontURL *string   `json:"cloudfrontUrl"`
	UserID        string    `gorm:"index;size:64;not null" json:"userId"`
	CreatedAt     time.Time `json:"createdAt"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Media) TableName() string { return "medias" }

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)
