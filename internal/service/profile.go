package service

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/adhub/adhub/backend/internal/countries"
	"github.com/adhub/adhub/backend/internal/logging"
	"github.com/adhub/adhub/backend/internal/models"
	"github.com/adhub/adhub/backend/internal/types"
)

// ProfileService handles user profile operations
type ProfileService struct {
	db       *gorm.DB
	storage  ObjectStore
	validate *validator.Validate
	logger   *logging.Logger
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance. storage may be nil,
// in which case account deletion skips photo cleanup.
func NewProfileService(db *gorm.DB, storage ObjectStore, logger *logging.Logger) *ProfileService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ProfileService{
		db:       db,
		storage:  storage,
		validate: newValidator(),
		logger:   logger,
	}
}

// Get retrieves a profile by identity id
func (s *ProfileService) Get(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, notFound(err, "profile")
	}
	return &profile, nil
}

// GetByUsername retrieves a profile by username, case-insensitively
func (s *ProfileService) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).
		Where("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&profile).Error
	if err != nil {
		return nil, notFound(err, "profile")
	}
	return &profile, nil
}

// UsernameAvailable reports whether username is free for the profile exceptID.
func (s *ProfileService) UsernameAvailable(ctx context.Context, username, exceptID string) (bool, error) {
	if !usernamePattern.MatchString(username) {
		return false, validationError("username", "must be 3-30 letters, digits or underscores")
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("LOWER(username) = ? AND id <> ?", strings.ToLower(username), exceptID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count usernames")
	}
	return count == 0, nil
}

// Bootstrap creates the skeleton row for a new identity. It is a no-op when
// the profile already exists.
func (s *ProfileService) Bootstrap(ctx context.Context, id, email, firstName, lastName, photoURL string) (*models.Profile, error) {
	profile := models.Profile{
		ID:              id,
		Email:           email,
		FirstName:       firstName,
		LastName:        lastName,
		ProfilePhotoURL: photoURL,
	}
	result := s.db.WithContext(ctx).Where(models.Profile{ID: id}).FirstOrCreate(&profile)
	if result.Error != nil {
		return nil, errors.Wrapf(result.Error, "bootstrap profile %s", id)
	}
	if result.RowsAffected > 0 {
		s.logger.InfoContext(ctx, "profile bootstrapped", "profile_id", id)
	}
	return &profile, nil
}

// CompleteSetup applies the setup wizard and marks the profile completed.
// A completed profile is edited through Update instead.
func (s *ProfileService) CompleteSetup(ctx context.Context, id string, req *types.ProfileSetupRequest) (*models.Profile, error) {
	if err := structError(s.validate.StructCtx(ctx, req)); err != nil {
		return nil, err
	}
	if req.UserType == models.UserTypeContentCreator {
		if err := validateBio(req.Bio); err != nil {
			return nil, err
		}
	}

	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile.IsProfileCompleted {
		return nil, errors.Wrap(ErrConflict, "profile setup is already complete")
	}
	if profile.UserType != nil && *profile.UserType != req.UserType {
		return nil, validationError("user_type", "account type cannot be changed")
	}
	if err := s.ensureUsernameFree(ctx, req.Username, id); err != nil {
		return nil, err
	}

	username := req.Username
	userType := req.UserType
	profile.Username = &username
	profile.UserType = &userType
	profile.FirstName = strings.TrimSpace(req.FirstName)
	profile.LastName = strings.TrimSpace(req.LastName)
	profile.City = strings.TrimSpace(req.City)
	profile.Country = countries.Normalize(req.Country)
	profile.Phone = strings.TrimSpace(req.Phone)

	if userType == models.UserTypeContentCreator {
		profile.Bio = req.Bio
		profile.InstagramURL = req.InstagramURL
		profile.TikTokURL = req.TikTokURL
		profile.YouTubeURL = req.YouTubeURL
		profile.IsPublic = req.IsPublic == nil || *req.IsPublic
		profile.OpenToCollaboration = req.OpenToCollaboration == nil || *req.OpenToCollaboration
	}
	profile.IsProfileCompleted = true

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, validationError("username", "username is already taken")
		}
		s.logger.ErrorContext(ctx, "failed to save profile setup", "profile_id", id, "error", err)
		return nil, errors.Wrap(err, "save profile setup")
	}
	return profile, nil
}

// Update applies a partial edit. The owner snapshot on the caller's job
// postings is refreshed in the same transaction.
func (s *ProfileService) Update(ctx context.Context, id string, req *types.UpdateProfileRequest) (*models.Profile, error) {
	if err := structError(s.validate.StructCtx(ctx, req)); err != nil {
		return nil, err
	}

	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.UserType != nil && models.UserType(*req.UserType) != profile.Type() {
		return nil, validationError("user_type", "account type cannot be changed")
	}

	if req.Username != nil && *req.Username != profile.UsernameValue() {
		if err := s.ensureUsernameFree(ctx, *req.Username, id); err != nil {
			return nil, err
		}
		username := *req.Username
		profile.Username = &username
	}
	if req.FirstName != nil {
		profile.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		profile.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.City != nil {
		profile.City = strings.TrimSpace(*req.City)
	}
	if req.Country != nil {
		profile.Country = countries.Normalize(*req.Country)
	}

	if profile.IsCreator() {
		if req.Bio != nil {
			if err := validateBio(*req.Bio); err != nil {
				return nil, err
			}
			profile.Bio = *req.Bio
		}
		if req.InstagramURL != nil {
			profile.InstagramURL = *req.InstagramURL
		}
		if req.TikTokURL != nil {
			profile.TikTokURL = *req.TikTokURL
		}
		if req.YouTubeURL != nil {
			profile.YouTubeURL = *req.YouTubeURL
		}
	} else if req.Bio != nil {
		profile.Bio = *req.Bio
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(profile).Error; err != nil {
			return err
		}
		return refreshOwnerSnapshot(tx, profile)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, validationError("username", "username is already taken")
		}
		s.logger.ErrorContext(ctx, "failed to update profile", "profile_id", id, "error", err)
		return nil, errors.Wrap(err, "update profile")
	}
	return profile, nil
}

// UpdateSettings changes contact details and visibility flags
func (s *ProfileService) UpdateSettings(ctx context.Context, id string, req *types.UpdateSettingsRequest) (*models.Profile, error) {
	if err := structError(s.validate.StructCtx(ctx, req)); err != nil {
		return nil, err
	}

	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Email != nil {
		updates["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.IsPublic != nil || req.OpenToCollaboration != nil {
		if !profile.IsCreator() {
			return nil, errors.Wrap(ErrWrongUserType, "visibility settings apply to creators only")
		}
		if req.IsPublic != nil {
			updates["is_public"] = *req.IsPublic
		}
		if req.OpenToCollaboration != nil {
			updates["open_to_collaboration"] = *req.OpenToCollaboration
		}
	}
	if len(updates) == 0 {
		return profile, nil
	}

	if err := s.db.WithContext(ctx).Model(profile).Updates(updates).Error; err != nil {
		s.logger.ErrorContext(ctx, "failed to update settings", "profile_id", id, "error", err)
		return nil, errors.Wrap(err, "update settings")
	}
	return s.Get(ctx, id)
}

// SetPhoto records a new profile photo and refreshes posting snapshots.
func (s *ProfileService) SetPhoto(ctx context.Context, id, key, url string) (*models.Profile, error) {
	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	profile.ProfilePhotoKey = key
	profile.ProfilePhotoURL = url

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(profile).Updates(map[string]interface{}{
			"profile_photo_key": key,
			"profile_photo_url": url,
		}).Error; err != nil {
			return err
		}
		return refreshOwnerSnapshot(tx, profile)
	})
	if err != nil {
		return nil, errors.Wrap(err, "update profile photo")
	}
	return profile, nil
}

// SyncIdentity copies identity provider fields onto an existing profile.
// Names the user already edited and uploaded photos are kept.
func (s *ProfileService) SyncIdentity(ctx context.Context, id, email, firstName, lastName, photoURL string) error {
	profile, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if email != "" {
		profile.Email = email
	}
	if profile.FirstName == "" {
		profile.FirstName = firstName
	}
	if profile.LastName == "" {
		profile.LastName = lastName
	}
	if profile.ProfilePhotoKey == "" && photoURL != "" {
		profile.ProfilePhotoURL = photoURL
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(profile).Error; err != nil {
			return errors.Wrap(err, "sync identity")
		}
		return refreshOwnerSnapshot(tx, profile)
	})
}

// Delete removes the profile and everything it owns. Storage cleanup runs
// afterwards and only logs failures.
func (s *ProfileService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		postings := tx.Model(&models.JobPosting{}).Select("id").Where("owner_id = ?", id)
		if err := tx.Where("job_posting_id IN (?)", postings).Delete(&models.SavedJob{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_posting_id IN (?)", postings).Delete(&models.JobApplication{}).Error; err != nil {
			return err
		}
		for _, model := range []interface{}{&models.SavedJob{}, &models.JobApplication{}, &models.TravelSchedule{}} {
			if err := tx.Where("profile_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("owner_id = ?", id).Delete(&models.JobPosting{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Profile{}).Error
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete profile", "profile_id", id, "error", err)
		return errors.Wrap(err, "delete profile")
	}

	if s.storage != nil {
		if err := s.storage.DeletePrefix(ctx, PhotoPrefix(id)); err != nil {
			s.logger.WarnContext(ctx, "profile photo cleanup failed", "profile_id", id, "error", err)
		}
	}
	return nil
}

func (s *ProfileService) ensureUsernameFree(ctx context.Context, username, id string) error {
	free, err := s.UsernameAvailable(ctx, username, id)
	if err != nil {
		return err
	}
	if !free {
		return validationError("username", "username is already taken")
	}
	return nil
}

// refreshOwnerSnapshot rewrites the denormalised owner columns of every
// posting owned by profile.
func refreshOwnerSnapshot(tx *gorm.DB, profile *models.Profile) error {
	if !profile.IsBusinessOwner() {
		return nil
	}
	var snapshot models.JobPosting
	snapshot.ApplySnapshot(profile)
	return tx.Model(&models.JobPosting{}).Where("owner_id = ?", profile.ID).Updates(map[string]interface{}{
		"owner_username":   snapshot.OwnerUsername,
		"owner_first_name": snapshot.OwnerFirstName,
		"owner_last_name":  snapshot.OwnerLastName,
		"owner_city":       snapshot.OwnerCity,
		"owner_country":    snapshot.OwnerCountry,
		"owner_photo_url":  snapshot.OwnerPhotoURL,
	}).Error
}
