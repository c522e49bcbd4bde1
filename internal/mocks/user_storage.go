package mocks

import (
	"context"
	"sync"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/storage/memory"
)

// MockUserStorage реализует user.UserStorage и user.ProfileStorage для тестирования
type MockUserStorage struct {
	mu      sync.Mutex
	inner   *memory.UserMemoryStorage
	creates int
	lookups int

	Err error
}

func NewMockUserStorage() *MockUserStorage {
	return &MockUserStorage{inner: memory.NewUserMemoryStorage()}
}

func (m *MockUserStorage) CreateUserWithProfile(ctx context.Context, name, email, passwordHash, bio string) (*model.User, error) {
	m.mu.Lock()
	m.creates++
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return m.inner.CreateUserWithProfile(ctx, name, email, passwordHash, bio)
}

func (m *MockUserStorage) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	m.lookups++
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return m.inner.GetUserByID(ctx, id)
}

func (m *MockUserStorage) GetCredentials(ctx context.Context, email string) (*model.User, string, error) {
	if m.Err != nil {
		return nil, "", m.Err
	}
	return m.inner.GetCredentials(ctx, email)
}

func (m *MockUserStorage) GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	m.mu.Lock()
	m.lookups++
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return m.inner.GetProfileByUserID(ctx, userID)
}

// Creates - сколько раз создавались пользователи
func (m *MockUserStorage) Creates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creates
}

// Lookups - сколько было обращений по ID к пользователям и профилям
func (m *MockUserStorage) Lookups() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookups
}
