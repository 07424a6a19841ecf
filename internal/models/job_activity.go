package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedJob is a creator's bookmark of a posting.
type SavedJob struct {
	ID           uuid.UUID   `gorm:"type:varchar(36);primarykey" json:"id"`
	ProfileID    string      `gorm:"type:varchar(64);not null;uniqueIndex:idx_saved_jobs_profile_job" json:"profile_id"`
	JobPostingID uuid.UUID   `gorm:"type:varchar(36);not null;uniqueIndex:idx_saved_jobs_profile_job;index" json:"job_posting_id"`
	JobPosting   *JobPosting `gorm:"foreignKey:JobPostingID;constraint:OnDelete:CASCADE" json:"job_posting,omitempty"`
	Profile      *Profile    `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
}

func (SavedJob) TableName() string {
	return "saved_jobs"
}

// BeforeCreate assigns a primary key when the caller did not.
func (s *SavedJob) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// JobApplication records that a creator applied to a posting.
type JobApplication struct {
	ID           uuid.UUID   `gorm:"type:varchar(36);primarykey" json:"id"`
	ProfileID    string      `gorm:"type:varchar(64);not null;uniqueIndex:idx_job_applications_profile_job" json:"profile_id"`
	JobPostingID uuid.UUID   `gorm:"type:varchar(36);not null;uniqueIndex:idx_job_applications_profile_job;index" json:"job_posting_id"`
	JobPosting   *JobPosting `gorm:"foreignKey:JobPostingID;constraint:OnDelete:CASCADE" json:"job_posting,omitempty"`
	Profile      *Profile    `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"applicant,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

func (JobApplication) TableName() string {
	return "job_applications"
}

// BeforeCreate assigns a primary key when the caller did not.
func (a *JobApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// All lists every model in dependency order, for auto-migration.
func All() []interface{} {
	return []interface{}{
		&Profile{},
		&TravelSchedule{},
		&JobPosting{},
		&SavedJob{},
		&JobApplication{},
	}
}
