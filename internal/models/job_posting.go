package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobPosting is a collaboration opportunity published by a business owner.
// The Owner* columns are a read model of the owner's profile, refreshed whenever
// that profile is updated.
type JobPosting struct {
	ID             uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	OwnerID        string    `gorm:"type:varchar(64);not null;index" json:"owner_id"`
	Owner          *Profile  `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Title          string    `gorm:"size:120;not null" json:"title"`
	Description    string    `gorm:"type:text;not null" json:"description"`
	DeadlineDate   *Date     `gorm:"type:date" json:"deadline_date"`
	DeadlineTime   *string   `gorm:"size:5" json:"deadline_time"`
	Slug           string    `gorm:"size:160;not null;uniqueIndex" json:"slug"`
	OwnerUsername  string    `gorm:"size:30" json:"owner_username"`
	OwnerFirstName string    `gorm:"size:100" json:"owner_first_name"`
	OwnerLastName  string    `gorm:"size:100" json:"owner_last_name"`
	OwnerCity      string    `gorm:"size:100" json:"owner_city"`
	OwnerCountry   string    `gorm:"size:2;index" json:"owner_country"`
	OwnerPhotoURL  string    `gorm:"size:512" json:"owner_photo_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (JobPosting) TableName() string {
	return "job_postings"
}

// BeforeCreate assigns a primary key when the caller did not.
func (j *JobPosting) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// Deadline returns the instant after which the posting no longer accepts applications.
// A deadline without a time closes at the end of that day.
func (j *JobPosting) Deadline() (time.Time, bool) {
	if j.DeadlineDate == nil || j.DeadlineDate.IsZero() {
		return time.Time{}, false
	}
	day := j.DeadlineDate.Time()
	if j.DeadlineTime != nil && *j.DeadlineTime != "" {
		if clock, err := time.Parse("15:04", *j.DeadlineTime); err == nil {
			return day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute), true
		}
	}
	return day.AddDate(0, 0, 1), true
}

// IsClosed reports whether the deadline has passed at now.
func (j *JobPosting) IsClosed(now time.Time) bool {
	deadline, ok := j.Deadline()
	if !ok {
		return false
	}
	return !now.Before(deadline)
}

// ApplySnapshot copies the owner fields that listings show without a join.
func (j *JobPosting) ApplySnapshot(owner *Profile) {
	j.OwnerUsername = owner.UsernameValue()
	j.OwnerFirstName = owner.FirstName
	j.OwnerLastName = owner.LastName
	j.OwnerCity = owner.City
	j.OwnerCountry = owner.Country
	j.OwnerPhotoURL = owner.ProfilePhotoURL
}
