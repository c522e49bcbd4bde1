package post

import (
	"context"
	"errors"
	"fmt"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/storage"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")
	ErrNotOwner     = errors.New("post not owned by user")
)

// UserFinder - то, что нужно гарду от хранилища пользователей
type UserFinder interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// Guard проверяет, что пользователь существует и является автором поста.
type Guard struct {
	users UserFinder
	posts PostStorage
}

func NewGuard(users UserFinder, posts PostStorage) *Guard {
	return &Guard{users: users, posts: posts}
}

// CanUserMutatePost возвращает nil, если userID может менять пост postID.
// Проверки идут строго по порядку: пользователь -> пост -> автор; возвращается первая ошибка.
// Ошибки хранилища (кроме ErrNotFound) пробрасываются как есть.
func (g *Guard) CanUserMutatePost(ctx context.Context, userID, postID string) error {
	_, err := g.users.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("could not get user: %w", err)
	}

	p, err := g.posts.GetPostByID(ctx, postID)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("could not get post: %w", err)
	}

	if p.AuthorID != userID {
		return ErrNotOwner
	}

	return nil
}
