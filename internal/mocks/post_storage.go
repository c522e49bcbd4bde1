package mocks

import (
	"context"
	"sync"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/post"
	"github.com/VitaminP8/blogql/internal/storage/memory"
)

// MockPostStorage - in-memory хранилище постов, которое считает вызовы изменяющих методов
// и умеет возвращать заданную ошибку (Err) из любого метода.
type MockPostStorage struct {
	mu      sync.Mutex
	inner   *memory.PostMemoryStorage
	creates int
	updates int
	deletes int

	Err error
}

func NewMockPostStorage() *MockPostStorage {
	return &MockPostStorage{inner: memory.NewPostMemoryStorage()}
}

func (m *MockPostStorage) CreatePost(ctx context.Context, authorID, title, content string) (*model.Post, error) {
	m.mu.Lock()
	m.creates++
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return m.inner.CreatePost(ctx, authorID, title, content)
}

func (m *MockPostStorage) GetPostByID(ctx context.Context, id string) (*model.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.inner.GetPostByID(ctx, id)
}

func (m *MockPostStorage) ListPosts(ctx context.Context, filter post.Filter) ([]*model.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.inner.ListPosts(ctx, filter)
}

func (m *MockPostStorage) UpdatePost(ctx context.Context, id string, upd post.Update) (*model.Post, error) {
	m.mu.Lock()
	m.updates++
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return m.inner.UpdatePost(ctx, id, upd)
}

func (m *MockPostStorage) DeletePost(ctx context.Context, id string) error {
	m.mu.Lock()
	m.deletes++
	m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	return m.inner.DeletePost(ctx, id)
}

// Mutations - сколько раз вызывались CreatePost, UpdatePost и DeletePost
func (m *MockPostStorage) Mutations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creates + m.updates + m.deletes
}
