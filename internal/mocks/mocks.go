package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/adhub/adhub/backend/internal/models"
	"github.com/adhub/adhub/backend/internal/service"
	"github.com/adhub/adhub/backend/internal/types"
)

// MockTravelService is a mock implementation of the ITravelService interface
type MockTravelService struct {
	mock.Mock
}

var _ service.ITravelService = (*MockTravelService)(nil)

func (m *MockTravelService) ListOwn(ctx context.Context, profileID string) ([]types.TravelScheduleView, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.TravelScheduleView), args.Error(1)
}

func (m *MockTravelService) Create(ctx context.Context, profileID string, req *types.TravelScheduleRequest) (*types.TravelScheduleView, error) {
	args := m.Called(ctx, profileID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TravelScheduleView), args.Error(1)
}

func (m *MockTravelService) Update(ctx context.Context, profileID string, id uuid.UUID, req *types.TravelScheduleRequest) (*types.TravelScheduleView, error) {
	args := m.Called(ctx, profileID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TravelScheduleView), args.Error(1)
}

func (m *MockTravelService) Delete(ctx context.Context, profileID string, id uuid.UUID) error {
	return m.Called(ctx, profileID, id).Error(0)
}

func (m *MockTravelService) SweepExpired(ctx context.Context, profileID *string) (int64, error) {
	args := m.Called(ctx, profileID)
	return args.Get(0).(int64), args.Error(1)
}

// MockDirectoryService is a mock implementation of the IDirectoryService interface
type MockDirectoryService struct {
	mock.Mock
}

var _ service.IDirectoryService = (*MockDirectoryService)(nil)

func (m *MockDirectoryService) ListCreators(ctx context.Context, filter types.CreatorFilter) ([]types.CreatorListing, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.CreatorListing), args.Error(1)
}

func (m *MockDirectoryService) GetCreator(ctx context.Context, username, viewerID string) (*types.CreatorDetail, error) {
	args := m.Called(ctx, username, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CreatorDetail), args.Error(1)
}

// MockJobService is a mock implementation of the IJobService interface
type MockJobService struct {
	mock.Mock
}

var _ service.IJobService = (*MockJobService)(nil)

func postingResult(args mock.Arguments) (*models.JobPosting, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

func viewsResult(args mock.Arguments) ([]types.JobPostingView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.JobPostingView), args.Error(1)
}

func applicationsResult(args mock.Arguments) ([]models.JobApplication, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.JobApplication), args.Error(1)
}

func (m *MockJobService) Create(ctx context.Context, ownerID string, req *types.JobPostingRequest) (*models.JobPosting, error) {
	return postingResult(m.Called(ctx, ownerID, req))
}

func (m *MockJobService) Update(ctx context.Context, ownerID, slug string, req *types.JobPostingRequest) (*models.JobPosting, error) {
	return postingResult(m.Called(ctx, ownerID, slug, req))
}

func (m *MockJobService) Delete(ctx context.Context, ownerID, slug string) error {
	return m.Called(ctx, ownerID, slug).Error(0)
}

func (m *MockJobService) GetBySlug(ctx context.Context, slug, viewerID string) (*types.JobPostingView, error) {
	args := m.Called(ctx, slug, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.JobPostingView), args.Error(1)
}

func (m *MockJobService) List(ctx context.Context, filter types.JobFilter, viewerID string) ([]types.JobPostingView, error) {
	return viewsResult(m.Called(ctx, filter, viewerID))
}

func (m *MockJobService) ListByOwner(ctx context.Context, ownerID string) ([]types.JobPostingView, error) {
	return viewsResult(m.Called(ctx, ownerID))
}

func (m *MockJobService) Save(ctx context.Context, profileID, slug string) error {
	return m.Called(ctx, profileID, slug).Error(0)
}

func (m *MockJobService) Unsave(ctx context.Context, profileID, slug string) error {
	return m.Called(ctx, profileID, slug).Error(0)
}

func (m *MockJobService) ListSaved(ctx context.Context, profileID string) ([]types.JobPostingView, error) {
	return viewsResult(m.Called(ctx, profileID))
}

func (m *MockJobService) Apply(ctx context.Context, profileID, slug string) (*models.JobApplication, error) {
	args := m.Called(ctx, profileID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobApplication), args.Error(1)
}

func (m *MockJobService) ListApplications(ctx context.Context, profileID string) ([]models.JobApplication, error) {
	return applicationsResult(m.Called(ctx, profileID))
}

func (m *MockJobService) ListApplicants(ctx context.Context, ownerID, slug string) ([]models.JobApplication, error) {
	return applicationsResult(m.Called(ctx, ownerID, slug))
}
