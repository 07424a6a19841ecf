package service

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adhub/adhub/backend/internal/countries"
	"github.com/adhub/adhub/backend/internal/logging"
	"github.com/adhub/adhub/backend/internal/models"
	"github.com/adhub/adhub/backend/internal/travel"
	"github.com/adhub/adhub/backend/internal/types"
)

// TravelService manages creator travel schedules and their expiry.
type TravelService struct {
	db     *gorm.DB
	clock  travel.Clock
	logger *logging.Logger
}

var _ ITravelService = (*TravelService)(nil)

// NewTravelService creates a new TravelService. A nil clock uses wall time.
func NewTravelService(db *gorm.DB, clock travel.Clock, logger *logging.Logger) *TravelService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TravelService{db: db, clock: clock, logger: logger}
}

// ListOwn returns the caller's schedules ordered by start date. Expired rows
// are swept first; a failed sweep is logged and the list is still returned.
func (s *TravelService) ListOwn(ctx context.Context, profileID string) ([]types.TravelScheduleView, error) {
	if _, err := s.SweepExpired(ctx, &profileID); err != nil {
		s.logger.WarnContext(ctx, "travel sweep failed", "profile_id", profileID, "error", err)
	}

	var schedules []models.TravelSchedule
	err := s.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("start_date ASC").
		Find(&schedules).Error
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list travel schedules", "profile_id", profileID, "error", err)
		return nil, errors.Wrap(err, "list travel schedules")
	}

	today := s.clock.Today()
	views := make([]types.TravelScheduleView, 0, len(schedules))
	for _, schedule := range schedules {
		views = append(views, scheduleView(today, schedule))
	}
	return views, nil
}

// Create adds a schedule for a content creator.
func (s *TravelService) Create(ctx context.Context, profileID string, req *types.TravelScheduleRequest) (*types.TravelScheduleView, error) {
	today := s.clock.Today()
	if err := s.validate(today, req); err != nil {
		return nil, err
	}
	if err := s.requireCreator(ctx, profileID); err != nil {
		return nil, err
	}

	schedule := models.TravelSchedule{
		ProfileID:          profileID,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		DestinationCity:    strings.TrimSpace(req.DestinationCity),
		DestinationCountry: countries.Normalize(req.DestinationCountry),
	}
	if err := s.db.WithContext(ctx).Create(&schedule).Error; err != nil {
		s.logger.ErrorContext(ctx, "failed to create travel schedule", "profile_id", profileID, "error", err)
		return nil, errors.Wrap(err, "create travel schedule")
	}

	view := scheduleView(today, schedule)
	return &view, nil
}

// Update replaces the dates and destination of one of the caller's schedules.
func (s *TravelService) Update(ctx context.Context, profileID string, id uuid.UUID, req *types.TravelScheduleRequest) (*types.TravelScheduleView, error) {
	today := s.clock.Today()
	if err := s.validate(today, req); err != nil {
		return nil, err
	}

	var schedule models.TravelSchedule
	err := s.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", id, profileID).
		First(&schedule).Error
	if err != nil {
		return nil, notFound(err, "travel schedule")
	}

	schedule.StartDate = req.StartDate
	schedule.EndDate = req.EndDate
	schedule.DestinationCity = strings.TrimSpace(req.DestinationCity)
	schedule.DestinationCountry = countries.Normalize(req.DestinationCountry)
	if err := s.db.WithContext(ctx).Save(&schedule).Error; err != nil {
		s.logger.ErrorContext(ctx, "failed to update travel schedule", "profile_id", profileID, "schedule_id", id, "error", err)
		return nil, errors.Wrap(err, "update travel schedule")
	}

	view := scheduleView(today, schedule)
	return &view, nil
}

// Delete removes one of the caller's schedules.
func (s *TravelService) Delete(ctx context.Context, profileID string, id uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", id, profileID).
		Delete(&models.TravelSchedule{})
	if result.Error != nil {
		s.logger.ErrorContext(ctx, "failed to delete travel schedule", "profile_id", profileID, "schedule_id", id, "error", result.Error)
		return errors.Wrap(result.Error, "delete travel schedule")
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(ErrNotFound, "travel schedule not found")
	}
	return nil
}

// SweepExpired deletes schedules that ended more than a day ago, for one
// profile or for everyone when profileID is nil. Running it twice is harmless.
func (s *TravelService) SweepExpired(ctx context.Context, profileID *string) (int64, error) {
	cutoff := travel.SweepCutoff(s.clock.Today())
	query := s.db.WithContext(ctx).Where("end_date < ?", cutoff)
	if profileID != nil {
		query = query.Where("profile_id = ?", *profileID)
	}
	result := query.Delete(&models.TravelSchedule{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "sweep expired travel schedules")
	}
	if result.RowsAffected > 0 {
		s.logger.InfoContext(ctx, "swept expired travel schedules", "count", result.RowsAffected, "cutoff", cutoff.String())
	}
	return result.RowsAffected, nil
}

func (s *TravelService) validate(today models.Date, req *types.TravelScheduleRequest) error {
	if req == nil {
		return validationError("start_date", "start date is required")
	}
	err := travel.ValidateSchedule(today, req.StartDate, req.EndDate, req.DestinationCity, req.DestinationCountry)
	return markTravelErr(err)
}

func (s *TravelService) requireCreator(ctx context.Context, profileID string) error {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Select("id", "user_type").Where("id = ?", profileID).First(&profile).Error; err != nil {
		return notFound(err, "profile")
	}
	if !profile.IsCreator() {
		return errors.Wrap(ErrWrongUserType, "only content creators can add travel schedules")
	}
	return nil
}

func scheduleView(today models.Date, schedule models.TravelSchedule) types.TravelScheduleView {
	state := travel.Classify(today, schedule.StartDate, schedule.EndDate)
	return types.TravelScheduleView{
		TravelSchedule: schedule,
		State:          string(state),
		Label:          state.Label(),
		IsTraveling:    state.IsTraveling(),
	}
}
