package types

import (
	"github.com/adhub/adhub/backend/internal/models"
)

// ProfileSetupRequest is the body of the profile setup wizard.
type ProfileSetupRequest struct {
	Username            string          `json:"username" validate:"required,username"`
	FirstName           string          `json:"first_name" validate:"required,max=100"`
	LastName            string          `json:"last_name" validate:"required,max=100"`
	UserType            models.UserType `json:"user_type" validate:"required,oneof=content_creator business_owner"`
	City                string          `json:"city" validate:"required,max=100"`
	Country             string          `json:"country" validate:"required,country"`
	Phone               string          `json:"phone" validate:"omitempty,max=32"`
	Bio                 string          `json:"bio"`
	InstagramURL        string          `json:"instagram_url" validate:"omitempty,social=instagram.com"`
	TikTokURL           string          `json:"tiktok_url" validate:"omitempty,social=tiktok.com"`
	YouTubeURL          string          `json:"youtube_url" validate:"omitempty,social=youtube.com"`
	IsPublic            *bool           `json:"is_public"`
	OpenToCollaboration *bool           `json:"open_to_collaboration"`
}

// UpdateProfileRequest is a partial profile edit. Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Username     *string `json:"username,omitempty" validate:"omitempty,username"`
	FirstName    *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName     *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	City         *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Country      *string `json:"country,omitempty" validate:"omitempty,country"`
	Bio          *string `json:"bio,omitempty"`
	InstagramURL *string `json:"instagram_url,omitempty" validate:"omitempty,social=instagram.com"`
	TikTokURL    *string `json:"tiktok_url,omitempty" validate:"omitempty,social=tiktok.com"`
	YouTubeURL   *string `json:"youtube_url,omitempty" validate:"omitempty,social=youtube.com"`
	UserType     *string `json:"user_type,omitempty"`
}

// UpdateSettingsRequest covers the settings page.
type UpdateSettingsRequest struct {
	Email               *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone               *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	IsPublic            *bool   `json:"is_public,omitempty"`
	OpenToCollaboration *bool   `json:"open_to_collaboration,omitempty"`
}

// SessionResponse is returned by GET /session.
type SessionResponse struct {
	ProfileID string          `json:"profile_id"`
	Email     string          `json:"email"`
	Profile   *models.Profile `json:"profile"`
}
