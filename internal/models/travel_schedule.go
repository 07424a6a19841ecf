package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TravelSchedule is a dated trip owned by one creator profile.
type TravelSchedule struct {
	ID                 uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	ProfileID          string    `gorm:"type:varchar(64);not null;index" json:"profile_id"`
	Profile            *Profile  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"-"`
	StartDate          Date      `gorm:"type:date;not null" json:"start_date"`
	EndDate            Date      `gorm:"type:date;not null;index" json:"end_date"`
	DestinationCity    string    `gorm:"size:100;not null" json:"destination_city"`
	DestinationCountry string    `gorm:"size:2;not null;index" json:"destination_country"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (TravelSchedule) TableName() string {
	return "travel_schedules"
}

// BeforeCreate assigns a primary key when the caller did not.
func (t *TravelSchedule) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
