package post

import (
	"context"

	"github.com/VitaminP8/blogql/graph/model"
)

// Filter задает выборку постов. Результат всегда отсортирован по дате создания (новые первыми).
type Filter struct {
	AuthorID      string // пусто - все авторы
	PublishedOnly bool
}

// Update - частичное обновление: nil поля не трогаются.
type Update struct {
	Title     *string
	Content   *string
	Published *bool
}

type PostStorage interface {
	CreatePost(ctx context.Context, authorID, title, content string) (*model.Post, error)
	GetPostByID(ctx context.Context, id string) (*model.Post, error)
	ListPosts(ctx context.Context, filter Filter) ([]*model.Post, error)
	UpdatePost(ctx context.Context, id string, upd Update) (*model.Post, error)
	DeletePost(ctx context.Context, id string) error
}
