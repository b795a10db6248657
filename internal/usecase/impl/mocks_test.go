package impl

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taskdeck/internal/domain/entity"
	"taskdeck/internal/domain/repository"
	"taskdeck/internal/domain/service"
)

// Hand-rolled testify mocks for the repository and service contracts.

// passthroughTxManager runs the transactional function directly against a
// fixed factory, so tests observe the in-transaction repository calls and the
// function's error surfaces unchanged.
type passthroughTxManager struct {
	factory repository.RepositoryFactory
}

func (p *passthroughTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(p.factory)
}

type stubRepositoryFactory struct {
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
}

func (f *stubRepositoryFactory) UserRepo() repository.UserRepository {
	return f.userRepo
}

func (f *stubRepositoryFactory) TaskRepo() repository.TaskRepository {
	return f.taskRepo
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *MockUserRepository) UpdateDisplayName(ctx context.Context, id int64, displayName string) error {
	args := m.Called(ctx, id, displayName)

	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id int64) (*entity.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Task), args.Error(1)
}

func (m *MockTaskRepository) ExistsForUser(ctx context.Context, userID int64, title string) (bool, error) {
	args := m.Called(ctx, userID, title)

	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	args := m.Called(ctx, task)

	return args.Error(0)
}

func (m *MockTaskRepository) ListByUser(ctx context.Context, userID int64, skip, take int) ([]*entity.Task, error) {
	args := m.Called(ctx, userID, skip, take)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, id int64, title string, isDone bool) error {
	args := m.Called(ctx, id, title, isDone)

	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) ([]byte, []byte, error) {
	args := m.Called(password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}

	return args.Get(0).([]byte), args.Get(1).([]byte), args.Error(2)
}

func (m *MockPasswordHasher) Verify(password string, salt, expectedDigest []byte) bool {
	args := m.Called(password, salt, expectedDigest)

	return args.Bool(0)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) CreateToken(user *entity.User) (string, error) {
	args := m.Called(user)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Claims), args.Error(1)
}
