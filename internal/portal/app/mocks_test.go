package app_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"campusportal/internal/portal/domain/entities"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

func (m *mockPasswordService) DecoyHash() string {
	return m.Called().String(0)
}

type mockSessionStore struct {
	mock.Mock
}

func (m *mockSessionStore) Save(ctx context.Context, sessionID string, record []byte) error {
	return m.Called(ctx, sessionID, record).Error(0)
}

func (m *mockSessionStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockSessionStore) Replace(ctx context.Context, sessionID string, record []byte) error {
	return m.Called(ctx, sessionID, record).Error(0)
}

func (m *mockSessionStore) Delete(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type mockFeedbackStore struct {
	mock.Mock
}

func (m *mockFeedbackStore) Append(ctx context.Context, sessionID string, msg entities.FeedbackMessage) error {
	return m.Called(ctx, sessionID, msg).Error(0)
}

func (m *mockFeedbackStore) Drain(ctx context.Context, sessionID string) ([]entities.FeedbackMessage, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.FeedbackMessage), args.Error(1)
}

type mockSessionUseCase struct {
	mock.Mock
}

func (m *mockSessionUseCase) NewSessionID() string {
	return m.Called().String(0)
}

func (m *mockSessionUseCase) Establish(ctx context.Context, sessionID string, identity *entities.Identity) error {
	return m.Called(ctx, sessionID, identity).Error(0)
}

func (m *mockSessionUseCase) Rotate(ctx context.Context, previousID string, identity *entities.Identity) (string, error) {
	args := m.Called(ctx, previousID, identity)
	return args.String(0), args.Error(1)
}

func (m *mockSessionUseCase) Current(ctx context.Context, sessionID string) (*entities.Identity, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Identity), args.Error(1)
}

func (m *mockSessionUseCase) Refresh(ctx context.Context, sessionID string, identity *entities.Identity) error {
	return m.Called(ctx, sessionID, identity).Error(0)
}

func (m *mockSessionUseCase) Destroy(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}
