package mocks

import (
	"sync"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/subscription"
)

// MockSubscriptionManager - настоящий менеджер плюс журнал опубликованных постов
type MockSubscriptionManager struct {
	*subscription.SubscriptionManager

	mu        sync.Mutex
	published []*model.Post // Для отслеживания в тестах
}

func NewMockSubscriptionManager() *MockSubscriptionManager {
	return &MockSubscriptionManager{
		SubscriptionManager: subscription.NewSubscriptionManager(),
	}
}

func (m *MockSubscriptionManager) Publish(post *model.Post) {
	m.mu.Lock()
	m.published = append(m.published, post)
	m.mu.Unlock()

	m.SubscriptionManager.Publish(post)
}

// Published возвращает все посты, переданные в Publish
func (m *MockSubscriptionManager) Published() []*model.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*model.Post(nil), m.published...)
}
