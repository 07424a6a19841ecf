package service

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adhub/adhub/backend/internal/countries"
	"github.com/adhub/adhub/backend/internal/logging"
	"github.com/adhub/adhub/backend/internal/models"
	"github.com/adhub/adhub/backend/internal/travel"
	"github.com/adhub/adhub/backend/internal/types"
)

const maxSlugAttempts = 5

// JobService handles job postings, bookmarks and applications.
type JobService struct {
	db       *gorm.DB
	clock    travel.Clock
	validate *validator.Validate
	logger   *logging.Logger
}

var _ IJobService = (*JobService)(nil)

func NewJobService(db *gorm.DB, clock travel.Clock, logger *logging.Logger) *JobService {
	if logger == nil {
		logger = logging.Default()
	}
	return &JobService{db: db, clock: clock, validate: newValidator(), logger: logger}
}

// Create publishes a posting for a business owner. The slug gets a random
// suffix and is regenerated if it collides with an existing one.
func (s *JobService) Create(ctx context.Context, ownerID string, req *types.JobPostingRequest) (*models.JobPosting, error) {
	if err := s.validateRequest(ctx, req, nil); err != nil {
		return nil, err
	}
	owner, err := s.loadProfile(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !owner.IsBusinessOwner() {
		return nil, errors.Wrap(ErrWrongUserType, "only business owners can post jobs")
	}

	job := models.JobPosting{
		OwnerID:      ownerID,
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		DeadlineDate: normalizeDeadlineDate(req.DeadlineDate),
		DeadlineTime: normalizeDeadlineTime(req.DeadlineTime),
	}
	job.ApplySnapshot(owner)

	for attempt := 1; ; attempt++ {
		job.ID = uuid.Nil
		job.Slug = NewSlug(job.Title)
		err = s.db.WithContext(ctx).Create(&job).Error
		if err == nil {
			break
		}
		if !isUniqueViolation(err) || attempt >= maxSlugAttempts {
			s.logger.ErrorContext(ctx, "failed to create job posting", "profile_id", ownerID, "error", err)
			return nil, errors.Wrap(err, "create job posting")
		}
		s.logger.WarnContext(ctx, "job slug collision, retrying", "slug", job.Slug, "attempt", attempt)
	}

	s.logger.InfoContext(ctx, "job posting created", "profile_id", ownerID, "slug", job.Slug)
	return &job, nil
}

// Update edits an owner's posting. The slug never changes.
func (s *JobService) Update(ctx context.Context, ownerID, slug string, req *types.JobPostingRequest) (*models.JobPosting, error) {
	job, err := s.ownedPosting(ctx, ownerID, slug)
	if err != nil {
		return nil, err
	}
	if err := s.validateRequest(ctx, req, job.DeadlineDate); err != nil {
		return nil, err
	}

	job.Title = strings.TrimSpace(req.Title)
	job.Description = strings.TrimSpace(req.Description)
	job.DeadlineDate = normalizeDeadlineDate(req.DeadlineDate)
	job.DeadlineTime = normalizeDeadlineTime(req.DeadlineTime)

	err = s.db.WithContext(ctx).Model(job).Select("title", "description", "deadline_date", "deadline_time", "updated_at").Updates(job).Error
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update job posting", "profile_id", ownerID, "slug", slug, "error", err)
		return nil, errors.Wrap(err, "update job posting")
	}
	return job, nil
}

// Delete removes an owner's posting together with its bookmarks and applications.
func (s *JobService) Delete(ctx context.Context, ownerID, slug string) error {
	job, err := s.ownedPosting(ctx, ownerID, slug)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_posting_id = ?", job.ID).Delete(&models.SavedJob{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_posting_id = ?", job.ID).Delete(&models.JobApplication{}).Error; err != nil {
			return err
		}
		return tx.Delete(job).Error
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete job posting", "profile_id", ownerID, "slug", slug, "error", err)
		return errors.Wrap(err, "delete job posting")
	}
	return nil
}

// GetBySlug loads a posting as seen by viewerID, which may be empty.
func (s *JobService) GetBySlug(ctx context.Context, slug, viewerID string) (*types.JobPostingView, error) {
	job, err := s.posting(ctx, slug)
	if err != nil {
		return nil, err
	}
	views, err := s.views(ctx, []models.JobPosting{*job}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List returns the job board, newest first. Closed postings are dropped unless
// the filter asks for them.
func (s *JobService) List(ctx context.Context, filter types.JobFilter, viewerID string) ([]types.JobPostingView, error) {
	query := s.db.WithContext(ctx).Model(&models.JobPosting{})
	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		like := containsPattern(q)
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, like, like)
	}
	if country := countries.Normalize(filter.Country); country != "" {
		query = query.Where("owner_country = ?", country)
	}
	if city := strings.ToLower(strings.TrimSpace(filter.City)); city != "" {
		query = query.Where("LOWER(owner_city) = ?", city)
	}
	if !filter.IncludeClosed {
		query = query.Where("deadline_date IS NULL OR deadline_date >= ?", s.clock.Today())
	}

	var jobs []models.JobPosting
	if err := query.Order("created_at DESC").Find(&jobs).Error; err != nil {
		s.logger.ErrorContext(ctx, "failed to list job postings", "error", err)
		return nil, errors.Wrap(err, "list job postings")
	}

	if !filter.IncludeClosed {
		now := s.clock.Now()
		open := jobs[:0]
		for _, job := range jobs {
			if !job.IsClosed(now) {
				open = append(open, job)
			}
		}
		jobs = open
	}
	return s.views(ctx, jobs, viewerID)
}

// ListByOwner returns every posting of ownerID, newest first.
func (s *JobService) ListByOwner(ctx context.Context, ownerID string) ([]types.JobPostingView, error) {
	var jobs []models.JobPosting
	err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&jobs).Error
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list own job postings", "profile_id", ownerID, "error", err)
		return nil, errors.Wrap(err, "list own job postings")
	}
	return s.views(ctx, jobs, ownerID)
}

// Save bookmarks a posting for a creator. Saving twice is a no-op.
func (s *JobService) Save(ctx context.Context, profileID, slug string) error {
	if err := s.requireCreator(ctx, profileID); err != nil {
		return err
	}
	job, err := s.posting(ctx, slug)
	if err != nil {
		return err
	}
	saved := models.SavedJob{ProfileID: profileID, JobPostingID: job.ID}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "profile_id"}, {Name: "job_posting_id"}}, DoNothing: true}).
		Create(&saved).Error
	if err != nil && !isUniqueViolation(err) {
		s.logger.ErrorContext(ctx, "failed to save job", "profile_id", profileID, "slug", slug, "error", err)
		return errors.Wrap(err, "save job")
	}
	return nil
}

// Unsave removes a bookmark. Removing a missing bookmark is not an error.
func (s *JobService) Unsave(ctx context.Context, profileID, slug string) error {
	job, err := s.posting(ctx, slug)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).
		Where("profile_id = ? AND job_posting_id = ?", profileID, job.ID).
		Delete(&models.SavedJob{}).Error
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to unsave job", "profile_id", profileID, "slug", slug, "error", err)
		return errors.Wrap(err, "unsave job")
	}
	return nil
}

// ListSaved returns the creator's bookmarked postings, most recently saved first.
func (s *JobService) ListSaved(ctx context.Context, profileID string) ([]types.JobPostingView, error) {
	var saved []models.SavedJob
	err := s.db.WithContext(ctx).
		Preload("JobPosting").
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&saved).Error
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list saved jobs", "profile_id", profileID, "error", err)
		return nil, errors.Wrap(err, "list saved jobs")
	}

	jobs := make([]models.JobPosting, 0, len(saved))
	for _, item := range saved {
		if item.JobPosting != nil {
			jobs = append(jobs, *item.JobPosting)
		}
	}
	return s.views(ctx, jobs, profileID)
}

// Apply records a creator's application. Applying twice conflicts, and a
// posting past its deadline rejects new applications.
func (s *JobService) Apply(ctx context.Context, profileID, slug string) (*models.JobApplication, error) {
	if err := s.requireCreator(ctx, profileID); err != nil {
		return nil, err
	}
	job, err := s.posting(ctx, slug)
	if err != nil {
		return nil, err
	}
	if job.IsClosed(s.clock.Now()) {
		return nil, errors.Wrapf(ErrDeadlinePassed, "posting %s is closed", slug)
	}

	application := models.JobApplication{ProfileID: profileID, JobPostingID: job.ID}
	if err := s.db.WithContext(ctx).Create(&application).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, errors.Wrap(ErrConflict, "already applied to this job")
		}
		s.logger.ErrorContext(ctx, "failed to apply to job", "profile_id", profileID, "slug", slug, "error", err)
		return nil, errors.Wrap(err, "apply to job")
	}
	application.JobPosting = job
	s.logger.InfoContext(ctx, "job application submitted", "profile_id", profileID, "slug", slug)
	return &application, nil
}

// ListApplications returns the creator's applications with their postings.
func (s *JobService) ListApplications(ctx context.Context, profileID string) ([]models.JobApplication, error) {
	var applications []models.JobApplication
	err := s.db.WithContext(ctx).
		Preload("JobPosting").
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list applications", "profile_id", profileID, "error", err)
		return nil, errors.Wrap(err, "list applications")
	}
	return applications, nil
}

// ListApplicants returns the applications to one of the owner's postings.
func (s *JobService) ListApplicants(ctx context.Context, ownerID, slug string) ([]models.JobApplication, error) {
	job, err := s.ownedPosting(ctx, ownerID, slug)
	if err != nil {
		return nil, err
	}
	var applications []models.JobApplication
	err = s.db.WithContext(ctx).
		Preload("Profile").
		Where("job_posting_id = ?", job.ID).
		Order("created_at ASC").
		Find(&applications).Error
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list applicants", "profile_id", ownerID, "slug", slug, "error", err)
		return nil, errors.Wrap(err, "list applicants")
	}
	return applications, nil
}

func (s *JobService) validateRequest(ctx context.Context, req *types.JobPostingRequest, current *models.Date) error {
	if req == nil {
		return validationError("title", "is required")
	}
	if err := structError(s.validate.StructCtx(ctx, req)); err != nil {
		return err
	}
	deadline := normalizeDeadlineDate(req.DeadlineDate)
	if deadline == nil {
		if normalizeDeadlineTime(req.DeadlineTime) != nil {
			return validationError("deadline_time", "a deadline time needs a deadline date")
		}
		return nil
	}
	unchanged := current != nil && current.Equal(*deadline)
	if !unchanged && deadline.Before(s.clock.Today()) {
		return validationError("deadline_date", "deadline cannot be in the past")
	}
	return nil
}

func (s *JobService) posting(ctx context.Context, slug string) (*models.JobPosting, error) {
	var job models.JobPosting
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&job).Error; err != nil {
		return nil, notFound(err, "job posting")
	}
	return &job, nil
}

func (s *JobService) ownedPosting(ctx context.Context, ownerID, slug string) (*models.JobPosting, error) {
	job, err := s.posting(ctx, slug)
	if err != nil {
		return nil, err
	}
	if job.OwnerID != ownerID {
		return nil, errors.Wrap(ErrForbidden, "posting belongs to another account")
	}
	return job, nil
}

func (s *JobService) loadProfile(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, notFound(err, "profile")
	}
	return &profile, nil
}

func (s *JobService) requireCreator(ctx context.Context, profileID string) error {
	profile, err := s.loadProfile(ctx, profileID)
	if err != nil {
		return err
	}
	if !profile.IsCreator() {
		return errors.Wrap(ErrWrongUserType, "only content creators can do this")
	}
	return nil
}

// views decorates postings with what viewerID has done with them.
func (s *JobService) views(ctx context.Context, jobs []models.JobPosting, viewerID string) ([]types.JobPostingView, error) {
	saved := map[uuid.UUID]bool{}
	applied := map[uuid.UUID]bool{}
	if viewerID != "" && len(jobs) > 0 {
		ids := make([]uuid.UUID, len(jobs))
		for i, job := range jobs {
			ids[i] = job.ID
		}
		var savedIDs, appliedIDs []uuid.UUID
		err := s.db.WithContext(ctx).Model(&models.SavedJob{}).
			Where("profile_id = ? AND job_posting_id IN ?", viewerID, ids).
			Pluck("job_posting_id", &savedIDs).Error
		if err != nil {
			return nil, errors.Wrap(err, "load saved flags")
		}
		err = s.db.WithContext(ctx).Model(&models.JobApplication{}).
			Where("profile_id = ? AND job_posting_id IN ?", viewerID, ids).
			Pluck("job_posting_id", &appliedIDs).Error
		if err != nil {
			return nil, errors.Wrap(err, "load applied flags")
		}
		for _, id := range savedIDs {
			saved[id] = true
		}
		for _, id := range appliedIDs {
			applied[id] = true
		}
	}

	now := s.clock.Now()
	views := make([]types.JobPostingView, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, types.JobPostingView{
			JobPosting: job,
			IsClosed:   job.IsClosed(now),
			IsOwner:    viewerID != "" && job.OwnerID == viewerID,
			IsSaved:    saved[job.ID],
			HasApplied: applied[job.ID],
		})
	}
	return views, nil
}

func normalizeDeadlineDate(d *models.Date) *models.Date {
	if d == nil || d.IsZero() {
		return nil
	}
	return d
}

func normalizeDeadlineTime(t *string) *string {
	if t == nil || strings.TrimSpace(*t) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*t)
	return &trimmed
}
