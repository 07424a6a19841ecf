package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/adhub/adhub/backend/internal/models"
	"github.com/adhub/adhub/backend/internal/service"
	"github.com/adhub/adhub/backend/internal/types"
)

// MockProfileService is a mock implementation of the IProfileService interface
type MockProfileService struct {
	mock.Mock
}

var _ service.IProfileService = (*MockProfileService)(nil)

func profileResult(args mock.Arguments) (*models.Profile, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) Get(ctx context.Context, id string) (*models.Profile, error) {
	return profileResult(m.Called(ctx, id))
}

func (m *MockProfileService) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return profileResult(m.Called(ctx, username))
}

func (m *MockProfileService) UsernameAvailable(ctx context.Context, username, exceptID string) (bool, error) {
	args := m.Called(ctx, username, exceptID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileService) Bootstrap(ctx context.Context, id, email, firstName, lastName, photoURL string) (*models.Profile, error) {
	return profileResult(m.Called(ctx, id, email, firstName, lastName, photoURL))
}

func (m *MockProfileService) CompleteSetup(ctx context.Context, id string, req *types.ProfileSetupRequest) (*models.Profile, error) {
	return profileResult(m.Called(ctx, id, req))
}

func (m *MockProfileService) Update(ctx context.Context, id string, req *types.UpdateProfileRequest) (*models.Profile, error) {
	return profileResult(m.Called(ctx, id, req))
}

func (m *MockProfileService) UpdateSettings(ctx context.Context, id string, req *types.UpdateSettingsRequest) (*models.Profile, error) {
	return profileResult(m.Called(ctx, id, req))
}

func (m *MockProfileService) SetPhoto(ctx context.Context, id, key, url string) (*models.Profile, error) {
	return profileResult(m.Called(ctx, id, key, url))
}

func (m *MockProfileService) SyncIdentity(ctx context.Context, id, email, firstName, lastName, photoURL string) error {
	return m.Called(ctx, id, email, firstName, lastName, photoURL).Error(0)
}

func (m *MockProfileService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockPhotoService is a mock implementation of the IPhotoService interface
type MockPhotoService struct {
	mock.Mock
}

var _ service.IPhotoService = (*MockPhotoService)(nil)

func (m *MockPhotoService) Upload(ctx context.Context, profileID string, upload service.PhotoUpload) (*models.Profile, error) {
	return profileResult(m.Called(ctx, profileID, upload))
}

func (m *MockPhotoService) DeleteAll(ctx context.Context, profileID string) error {
	return m.Called(ctx, profileID).Error(0)
}
