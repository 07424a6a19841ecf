package mocks

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/adhub/adhub/backend/internal/service"
	"github.com/adhub/adhub/backend/internal/types"
)

// MockAuthService is a mock implementation of the IAuthService interface
type MockAuthService struct {
	mock.Mock
}

var _ service.IAuthService = (*MockAuthService)(nil)

func (m *MockAuthService) BeginSignIn(ctx context.Context, redirectTo string) (string, error) {
	args := m.Called(ctx, redirectTo)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) CompleteSignIn(ctx context.Context, code, state string) *service.SignInResult {
	args := m.Called(ctx, code, state)
	return args.Get(0).(*service.SignInResult)
}

func (m *MockAuthService) Session(ctx context.Context, token string) (*types.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Session), args.Error(1)
}

func (m *MockAuthService) SessionTTLSeconds() int {
	return m.Called().Int(0)
}

// MockWebhookService is a mock implementation of the IWebhookService interface
type MockWebhookService struct {
	mock.Mock
}

var _ service.IWebhookService = (*MockWebhookService)(nil)

func (m *MockWebhookService) Handle(ctx context.Context, payload []byte, headers http.Header) error {
	return m.Called(ctx, payload, headers).Error(0)
}
