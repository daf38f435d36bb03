package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"campusportal/internal/portal/domain/entities"
	"campusportal/internal/portal/ports/api"
)

type mockAuthUseCase struct {
	mock.Mock
}

func (m *mockAuthUseCase) Register(ctx context.Context, in api.RegisterInput) (*entities.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockAuthUseCase) Login(ctx context.Context, in api.LoginInput) (*entities.Identity, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Identity), args.Error(1)
}

type mockAccountUseCase struct {
	mock.Mock
}

func (m *mockAccountUseCase) List(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *mockAccountUseCase) GetEditable(ctx context.Context, sessionID string, targetID int64) (*entities.User, error) {
	args := m.Called(ctx, sessionID, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockAccountUseCase) Edit(ctx context.Context, sessionID string, targetID int64, in api.EditInput) (*entities.User, error) {
	args := m.Called(ctx, sessionID, targetID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockAccountUseCase) Delete(ctx context.Context, sessionID string, targetID int64) error {
	args := m.Called(ctx, sessionID, targetID)
	return args.Error(0)
}
