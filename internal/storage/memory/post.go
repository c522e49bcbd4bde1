package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/post"
	"github.com/VitaminP8/blogql/internal/storage"
)

type PostMemoryStorage struct {
	mu     sync.Mutex
	posts  map[string]*model.Post
	nextID int
	now    func() time.Time
}

func NewPostMemoryStorage() *PostMemoryStorage {
	return &PostMemoryStorage{
		posts:  make(map[string]*model.Post),
		nextID: 1,
		now:    time.Now,
	}
}

func (s *PostMemoryStorage) CreatePost(ctx context.Context, authorID, title, content string) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextID)
	s.nextID++

	p := &model.Post{
		ID:        id,
		Title:     title,
		Content:   content,
		Published: false,
		AuthorID:  authorID,
		CreatedAt: s.now().UTC(),
	}

	s.posts[id] = p
	copied := *p
	return &copied, nil
}

func (s *PostMemoryStorage) GetPostByID(ctx context.Context, id string) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return nil, fmt.Errorf("post %s: %w", id, storage.ErrNotFound)
	}

	copied := *p
	return &copied, nil
}

func (s *PostMemoryStorage) ListPosts(ctx context.Context, filter post.Filter) ([]*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]*model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if filter.AuthorID != "" && p.AuthorID != filter.AuthorID {
			continue
		}
		if filter.PublishedOnly && !p.Published {
			continue
		}
		copied := *p
		posts = append(posts, &copied)
	}

	// новые первыми; при равном времени - по убыванию ID
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return idLess(posts[j].ID, posts[i].ID)
	})

	return posts, nil
}

func (s *PostMemoryStorage) UpdatePost(ctx context.Context, id string, upd post.Update) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return nil, fmt.Errorf("post %s: %w", id, storage.ErrNotFound)
	}

	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Content != nil {
		p.Content = *upd.Content
	}
	if upd.Published != nil {
		p.Published = *upd.Published
	}

	copied := *p
	return &copied, nil
}

func (s *PostMemoryStorage) DeletePost(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[id]; !exists {
		return fmt.Errorf("post %s: %w", id, storage.ErrNotFound)
	}

	delete(s.posts, id)
	return nil
}

// idLess сравнивает числовые ID как числа
func idLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
