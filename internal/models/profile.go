package models

import (
	"time"
)

// UserType distinguishes the two sides of the marketplace.
type UserType string

const (
	UserTypeContentCreator UserType = "content_creator"
	UserTypeBusinessOwner  UserType = "business_owner"
)

func (t UserType) Valid() bool {
	return t == UserTypeContentCreator || t == UserTypeBusinessOwner
}

// Profile is one row per authenticated identity. ID is the identity provider subject.
type Profile struct {
	ID                  string    `gorm:"type:varchar(64);primarykey" json:"id"`
	Email               string    `gorm:"size:255" json:"email"`
	Username            *string   `gorm:"size:30;uniqueIndex" json:"username"`
	FirstName           string    `gorm:"size:100" json:"first_name"`
	LastName            string    `gorm:"size:100" json:"last_name"`
	UserType            *UserType `gorm:"size:20" json:"user_type"`
	Phone               string    `gorm:"size:32" json:"phone,omitempty"`
	City                string    `gorm:"size:100" json:"city"`
	Country             string    `gorm:"size:2;index" json:"country"`
	Bio                 string    `gorm:"type:text" json:"bio"`
	InstagramURL        string    `gorm:"size:255" json:"instagram_url"`
	TikTokURL           string    `gorm:"column:tiktok_url;size:255" json:"tiktok_url"`
	YouTubeURL          string    `gorm:"column:youtube_url;size:255" json:"youtube_url"`
	IsPublic            bool      `gorm:"not null;default:false" json:"is_public"`
	OpenToCollaboration bool      `gorm:"not null;default:false" json:"open_to_collaboration"`
	ProfilePhotoKey     string    `gorm:"size:255" json:"-"`
	ProfilePhotoURL     string    `gorm:"size:512" json:"profile_photo_url"`
	IsProfileCompleted  bool      `gorm:"not null;default:false" json:"is_profile_completed"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// UsernameValue returns the username or "" for a skeleton profile.
func (p *Profile) UsernameValue() string {
	if p == nil || p.Username == nil {
		return ""
	}
	return *p.Username
}

// Type returns the user type or "" when it has not been chosen yet.
func (p *Profile) Type() UserType {
	if p == nil || p.UserType == nil {
		return ""
	}
	return *p.UserType
}

func (p *Profile) IsCreator() bool {
	return p.Type() == UserTypeContentCreator
}

func (p *Profile) IsBusinessOwner() bool {
	return p.Type() == UserTypeBusinessOwner
}
