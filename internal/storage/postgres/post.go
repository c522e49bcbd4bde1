package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/post"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/VitaminP8/blogql/models"
	"github.com/jinzhu/gorm"
)

type PostPostgresStorage struct {
	db *gorm.DB
}

func NewPostPostgresStorage(db *gorm.DB) *PostPostgresStorage {
	return &PostPostgresStorage{db: db}
}

func (s *PostPostgresStorage) CreatePost(ctx context.Context, authorID, title, content string) (*model.Post, error) {
	userID, ok := parseID(authorID)
	if !ok {
		return nil, fmt.Errorf("invalid author id %q", authorID)
	}

	p := &models.Post{
		Title:     title,
		Content:   content,
		Published: false,
		UserID:    userID,
	}

	err := s.db.Create(p).Error
	if err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	return toPost(p), nil
}

func (s *PostPostgresStorage) GetPostByID(ctx context.Context, id string) (*model.Post, error) {
	p, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return toPost(p), nil
}

func (s *PostPostgresStorage) ListPosts(ctx context.Context, filter post.Filter) ([]*model.Post, error) {
	q := s.db.Order("created_at desc").Order("id desc")

	if filter.AuthorID != "" {
		authorID, ok := parseID(filter.AuthorID)
		if !ok {
			return []*model.Post{}, nil
		}
		q = q.Where("user_id = ?", authorID)
	}
	if filter.PublishedOnly {
		q = q.Where("published = ?", true)
	}

	var posts []models.Post
	err := q.Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("could not get posts: %w", err)
	}

	results := make([]*model.Post, 0, len(posts))
	for i := range posts {
		results = append(results, toPost(&posts[i]))
	}

	return results, nil
}

func (s *PostPostgresStorage) UpdatePost(ctx context.Context, id string, upd post.Update) (*model.Post, error) {
	p, err := s.find(id)
	if err != nil {
		return nil, err
	}

	// map, а не структура: иначе gorm пропустит нулевые значения (published=false)
	fields := make(map[string]interface{})
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Content != nil {
		fields["content"] = *upd.Content
	}
	if upd.Published != nil {
		fields["published"] = *upd.Published
	}

	if len(fields) > 0 {
		err = s.db.Model(p).Updates(fields).Error
		if err != nil {
			return nil, fmt.Errorf("could not update post: %w", err)
		}
	}

	p, err = s.find(id)
	if err != nil {
		return nil, err
	}
	return toPost(p), nil
}

func (s *PostPostgresStorage) DeletePost(ctx context.Context, id string) error {
	postID, ok := parseID(id)
	if !ok {
		return fmt.Errorf("post %s: %w", id, storage.ErrNotFound)
	}

	res := s.db.Delete(&models.Post{}, postID)
	if res.Error != nil {
		return fmt.Errorf("could not delete post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post %s: %w", id, storage.ErrNotFound)
	}

	return nil
}

func (s *PostPostgresStorage) find(id string) (*models.Post, error) {
	postID, ok := parseID(id)
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, storage.ErrNotFound)
	}

	var p models.Post
	err := s.db.First(&p, postID).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("post %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get post by id: %w", err)
	}
	return &p, nil
}

func toPost(p *models.Post) *model.Post {
	return &model.Post{
		ID:        fmt.Sprint(p.ID),
		Title:     p.Title,
		Content:   p.Content,
		Published: p.Published,
		AuthorID:  fmt.Sprint(p.UserID),
		CreatedAt: p.CreatedAt.UTC(),
	}
}
