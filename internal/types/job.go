package types

import (
	"github.com/adhub/adhub/backend/internal/models"
)

// JobPostingRequest creates or edits a posting.
type JobPostingRequest struct {
	Title        string       `json:"title" validate:"required,max=120"`
	Description  string       `json:"description" validate:"required,max=10000"`
	DeadlineDate *models.Date `json:"deadline_date"`
	DeadlineTime *string      `json:"deadline_time" validate:"omitempty,clock"`
}

// JobFilter narrows the job board.
type JobFilter struct {
	Query         string `form:"q"`
	Country       string `form:"country"`
	City          string `form:"city"`
	IncludeClosed bool   `form:"include_closed"`
}

// JobPostingView is a posting as seen by a particular viewer.
type JobPostingView struct {
	models.JobPosting
	IsClosed   bool `json:"is_closed"`
	IsOwner    bool `json:"is_owner"`
	IsSaved    bool `json:"is_saved"`
	HasApplied bool `json:"has_applied"`
}
