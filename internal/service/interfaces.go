package service

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/adhub/adhub/backend/internal/models"
	"github.com/adhub/adhub/backend/internal/types"
)

// IAuthService defines the interface for sign-in and session handling
type IAuthService interface {
	BeginSignIn(ctx context.Context, redirectTo string) (string, error)
	CompleteSignIn(ctx context.Context, code, state string) *SignInResult
	Session(ctx context.Context, token string) (*types.Session, error)
	SessionTTLSeconds() int
}

// IProfileService defines the interface for profile operations
type IProfileService interface {
	Get(ctx context.Context, id string) (*models.Profile, error)
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
	UsernameAvailable(ctx context.Context, username, exceptID string) (bool, error)
	Bootstrap(ctx context.Context, id, email, firstName, lastName, photoURL string) (*models.Profile, error)
	CompleteSetup(ctx context.Context, id string, req *types.ProfileSetupRequest) (*models.Profile, error)
	Update(ctx context.Context, id string, req *types.UpdateProfileRequest) (*models.Profile, error)
	UpdateSettings(ctx context.Context, id string, req *types.UpdateSettingsRequest) (*models.Profile, error)
	SetPhoto(ctx context.Context, id, key, url string) (*models.Profile, error)
	SyncIdentity(ctx context.Context, id, email, firstName, lastName, photoURL string) error
	Delete(ctx context.Context, id string) error
}

// ITravelService defines the interface for a creator's travel schedules
type ITravelService interface {
	ListOwn(ctx context.Context, profileID string) ([]types.TravelScheduleView, error)
	Create(ctx context.Context, profileID string, req *types.TravelScheduleRequest) (*types.TravelScheduleView, error)
	Update(ctx context.Context, profileID string, id uuid.UUID, req *types.TravelScheduleRequest) (*types.TravelScheduleView, error)
	Delete(ctx context.Context, profileID string, id uuid.UUID) error
	SweepExpired(ctx context.Context, profileID *string) (int64, error)
}

// IDirectoryService defines the interface for the public creator directory
type IDirectoryService interface {
	ListCreators(ctx context.Context, filter types.CreatorFilter) ([]types.CreatorListing, error)
	GetCreator(ctx context.Context, username, viewerID string) (*types.CreatorDetail, error)
}

// IJobService defines the interface for job postings and creator activity on them
type IJobService interface {
	Create(ctx context.Context, ownerID string, req *types.JobPostingRequest) (*models.JobPosting, error)
	Update(ctx context.Context, ownerID, slug string, req *types.JobPostingRequest) (*models.JobPosting, error)
	Delete(ctx context.Context, ownerID, slug string) error
	GetBySlug(ctx context.Context, slug, viewerID string) (*types.JobPostingView, error)
	List(ctx context.Context, filter types.JobFilter, viewerID string) ([]types.JobPostingView, error)
	ListByOwner(ctx context.Context, ownerID string) ([]types.JobPostingView, error)
	Save(ctx context.Context, profileID, slug string) error
	Unsave(ctx context.Context, profileID, slug string) error
	ListSaved(ctx context.Context, profileID string) ([]types.JobPostingView, error)
	Apply(ctx context.Context, profileID, slug string) (*models.JobApplication, error)
	ListApplications(ctx context.Context, profileID string) ([]models.JobApplication, error)
	ListApplicants(ctx context.Context, ownerID, slug string) ([]models.JobApplication, error)
}

// IPhotoService defines the interface for profile photo storage
type IPhotoService interface {
	Upload(ctx context.Context, profileID string, upload PhotoUpload) (*models.Profile, error)
	DeleteAll(ctx context.Context, profileID string) error
}

// IWebhookService defines the interface for identity provider events
type IWebhookService interface {
	Handle(ctx context.Context, payload []byte, headers http.Header) error
}

// ObjectStore is the blob storage behind profile photos.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	DeletePrefix(ctx context.Context, prefix string) error
}
