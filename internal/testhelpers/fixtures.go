package testhelpers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adhub/adhub/backend/internal/models"
	"github.com/adhub/adhub/backend/internal/travel"
)

// FixedClock returns a clock frozen at the start of day (UTC).
func FixedClock(day string) travel.Clock {
	at := models.MustParseDate(day).Time().Add(12 * time.Hour)
	return func() time.Time { return at }
}

// ProfileOption customises a fixture profile.
type ProfileOption func(*models.Profile)

func WithCountry(country string) ProfileOption {
	return func(p *models.Profile) { p.Country = country }
}

func WithCity(city string) ProfileOption {
	return func(p *models.Profile) { p.City = city }
}

func Private() ProfileOption {
	return func(p *models.Profile) { p.IsPublic = false }
}

func Incomplete() ProfileOption {
	return func(p *models.Profile) { p.IsProfileCompleted = false }
}

// CreateProfile inserts a completed public profile of the given type.
func CreateProfile(t *testing.T, db *gorm.DB, username string, userType models.UserType, opts ...ProfileOption) *models.Profile {
	t.Helper()
	name := username
	kind := userType
	profile := &models.Profile{
		ID:                  "user_" + uuid.NewString()[:8],
		Email:               username + "@example.com",
		Username:            &name,
		FirstName:           "Test",
		LastName:            "User",
		UserType:            &kind,
		City:                "Lisbon",
		Country:             "PT",
		IsPublic:            true,
		OpenToCollaboration: true,
		IsProfileCompleted:  true,
	}
	for _, opt := range opts {
		opt(profile)
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create profile %s: %v", username, err)
	}
	return profile
}

func CreateCreator(t *testing.T, db *gorm.DB, username string, opts ...ProfileOption) *models.Profile {
	t.Helper()
	return CreateProfile(t, db, username, models.UserTypeContentCreator, opts...)
}

func CreateBusinessOwner(t *testing.T, db *gorm.DB, username string, opts ...ProfileOption) *models.Profile {
	t.Helper()
	return CreateProfile(t, db, username, models.UserTypeBusinessOwner, opts...)
}

// CreateSchedule inserts a trip directly, bypassing date validation.
func CreateSchedule(t *testing.T, db *gorm.DB, profileID, start, end, city, country string) *models.TravelSchedule {
	t.Helper()
	schedule := &models.TravelSchedule{
		ProfileID:          profileID,
		StartDate:          models.MustParseDate(start),
		EndDate:            models.MustParseDate(end),
		DestinationCity:    city,
		DestinationCountry: country,
	}
	if err := db.Create(schedule).Error; err != nil {
		t.Fatalf("failed to create schedule: %v", err)
	}
	return schedule
}
