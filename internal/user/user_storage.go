package user

import (
	"context"

	"github.com/VitaminP8/blogql/graph/model"
)

type UserStorage interface {
	// CreateUserWithProfile создает пользователя и его профиль атомарно
	CreateUserWithProfile(ctx context.Context, name, email, passwordHash, bio string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	// GetCredentials возвращает пользователя и хэш его пароля
	GetCredentials(ctx context.Context, email string) (*model.User, string, error)
}

type ProfileStorage interface {
	GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error)
}
