package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/VitaminP8/blogql/models"
	"github.com/jinzhu/gorm"
)

type UserPostgresStorage struct {
	db *gorm.DB
}

func NewUserPostgresStorage(db *gorm.DB) *UserPostgresStorage {
	return &UserPostgresStorage{db: db}
}

func (s *UserPostgresStorage) CreateUserWithProfile(ctx context.Context, name, email, passwordHash, bio string) (*model.User, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// проверка - существует ли такой email
	var count int
	err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		tx.Rollback()
		return nil, fmt.Errorf("user with email %s: %w", email, storage.ErrAlreadyExists)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: passwordHash,
	}
	// параллельная регистрация могла проскочить проверку выше, тогда сработает уникальный индекс
	err = tx.Create(user).Error
	if isUniqueViolation(err) {
		tx.Rollback()
		return nil, fmt.Errorf("user with email %s: %w", email, storage.ErrAlreadyExists)
	}
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile := &models.Profile{
		Bio:    bio,
		UserID: user.ID,
	}
	err = tx.Create(profile).Error
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	err = tx.Commit().Error
	if err != nil {
		return nil, fmt.Errorf("failed to commit user creation: %w", err)
	}

	return toUser(user), nil
}

func (s *UserPostgresStorage) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	userID, ok := parseID(id)
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
	}

	var user models.User
	err := s.db.First(&user, userID).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}

	return toUser(&user), nil
}

func (s *UserPostgresStorage) GetCredentials(ctx context.Context, email string) (*model.User, string, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, "", fmt.Errorf("user with email %s: %w", email, storage.ErrNotFound)
	}
	if err != nil {
		return nil, "", fmt.Errorf("could not get user by email: %w", err)
	}

	return toUser(&user), user.Password, nil
}

func (s *UserPostgresStorage) GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	id, ok := parseID(userID)
	if !ok {
		return nil, fmt.Errorf("profile of user %s: %w", userID, storage.ErrNotFound)
	}

	var profile models.Profile
	err := s.db.Where("user_id = ?", id).First(&profile).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("profile of user %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get profile: %w", err)
	}

	return &model.Profile{
		ID:     fmt.Sprint(profile.ID),
		Bio:    profile.Bio,
		UserID: fmt.Sprint(profile.UserID),
	}, nil
}

func toUser(user *models.User) *model.User {
	return &model.User{
		ID:    fmt.Sprint(user.ID),
		Name:  user.Name,
		Email: user.Email,
	}
}
