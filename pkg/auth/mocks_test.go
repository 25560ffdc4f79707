package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/brightpath/authkit/pkg/auth"
)

// MockUserStore is a mock implementation of the auth.UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindByEmailOrProvider(ctx context.Context, email, provider, providerAccountID string) (*auth.User, error) {
	args := m.Called(ctx, email, provider, providerAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockUserStore) FindByID(ctx context.Context, id string) (*auth.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockUserStore) Create(ctx context.Context, user *auth.User) (*auth.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockUserStore) Update(ctx context.Context, id string, params auth.UpdateUserParams) (*auth.User, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockUserStore) ValidID(id string) bool {
	args := m.Called(id)
	return args.Bool(0)
}

// MockProviderEmailClient is a mock implementation of the auth.ProviderEmailClient interface
type MockProviderEmailClient struct {
	mock.Mock
}

func (m *MockProviderEmailClient) ListEmails(ctx context.Context, accessToken string) ([]auth.ProviderEmail, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]auth.ProviderEmail), args.Error(1)
}
