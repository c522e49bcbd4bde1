package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/storage"
)

// UserMemoryStorage хранит пользователей и их профили под одним мьютексом,
// поэтому создание пары пользователь+профиль атомарно.
type UserMemoryStorage struct {
	mu            sync.Mutex
	users         map[string]*model.User
	emails        map[string]string         // email -> userID
	passwords     map[string]string         // userID -> bcrypt hash
	profiles      map[string]*model.Profile // userID -> profile
	nextID        int
	nextProfileID int
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		users:         make(map[string]*model.User),
		emails:        make(map[string]string),
		passwords:     make(map[string]string),
		profiles:      make(map[string]*model.Profile),
		nextID:        1,
		nextProfileID: 1,
	}
}

func (s *UserMemoryStorage) CreateUserWithProfile(ctx context.Context, name, email, passwordHash, bio string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.emails[email]; exists {
		return nil, fmt.Errorf("user with email %s: %w", email, storage.ErrAlreadyExists)
	}

	id := strconv.Itoa(s.nextID)
	s.nextID++

	user := &model.User{
		ID:    id,
		Name:  name,
		Email: email,
	}

	profileID := strconv.Itoa(s.nextProfileID)
	s.nextProfileID++

	s.users[id] = user
	s.emails[email] = id
	s.passwords[id] = passwordHash
	s.profiles[id] = &model.Profile{
		ID:     profileID,
		Bio:    bio,
		UserID: id,
	}

	copied := *user
	return &copied, nil
}

func (s *UserMemoryStorage) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[id]
	if !exists {
		return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
	}

	copied := *user
	return &copied, nil
}

func (s *UserMemoryStorage) GetCredentials(ctx context.Context, email string) (*model.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, exists := s.emails[email]
	if !exists {
		return nil, "", fmt.Errorf("user with email %s: %w", email, storage.ErrNotFound)
	}

	copied := *s.users[id]
	return &copied, s.passwords[id], nil
}

func (s *UserMemoryStorage) GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, exists := s.profiles[userID]
	if !exists {
		return nil, fmt.Errorf("profile of user %s: %w", userID, storage.ErrNotFound)
	}

	copied := *profile
	return &copied, nil
}
