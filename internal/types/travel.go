package types

import (
	"github.com/google/uuid"

	"github.com/adhub/adhub/backend/internal/models"
)

// TravelScheduleRequest creates or replaces a travel schedule.
type TravelScheduleRequest struct {
	StartDate          models.Date `json:"start_date"`
	EndDate            models.Date `json:"end_date"`
	DestinationCity    string      `json:"destination_city"`
	DestinationCountry string      `json:"destination_country"`
}

// TravelScheduleView is a schedule with its state on the day it was read.
type TravelScheduleView struct {
	models.TravelSchedule
	State       string `json:"state"`
	Label       string `json:"label"`
	IsTraveling bool   `json:"is_traveling"`
}

// TravelAnnotation is the trip attached to a creator in directory listings.
type TravelAnnotation struct {
	ScheduleID         uuid.UUID   `json:"schedule_id"`
	StartDate          models.Date `json:"start_date"`
	EndDate            models.Date `json:"end_date"`
	DestinationCity    string      `json:"destination_city"`
	DestinationCountry string      `json:"destination_country"`
	State              string      `json:"state"`
}

// CreatorListing is one row of the public creator directory.
type CreatorListing struct {
	ProfileID           string            `json:"profile_id"`
	Username            string            `json:"username"`
	FirstName           string            `json:"first_name"`
	LastName            string            `json:"last_name"`
	City                string            `json:"city"`
	Country             string            `json:"country"`
	Bio                 string            `json:"bio"`
	ProfilePhotoURL     string            `json:"profile_photo_url"`
	InstagramURL        string            `json:"instagram_url"`
	TikTokURL           string            `json:"tiktok_url"`
	YouTubeURL          string            `json:"youtube_url"`
	OpenToCollaboration bool              `json:"open_to_collaboration"`
	IsTraveling         bool              `json:"is_traveling"`
	Travel              *TravelAnnotation `json:"travel,omitempty"`
}

// CreatorFilter narrows the directory.
type CreatorFilter struct {
	Country string `form:"country"`
	City    string `form:"city"`
	Query   string `form:"q"`
}

// CreatorDetail is a public creator profile page.
type CreatorDetail struct {
	CreatorListing
	Schedules []TravelScheduleView `json:"schedules"`
}
