package subscription

import (
	"sync"

	"github.com/VitaminP8/blogql/graph/model"
)

// subscriberBuffer - сколько постов может ждать подписчика, прежде чем новые начнут теряться
const subscriberBuffer = 16

// SubscriptionManager рассылает только что опубликованные посты всем подписчикам
type SubscriptionManager struct {
	mu     sync.Mutex
	subs   map[int]chan *model.Post
	nextID int
}

func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{
		subs: make(map[int]chan *model.Post),
	}
}

func (m *SubscriptionManager) Subscribe() (<-chan *model.Post, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan *model.Post, subscriberBuffer)
	id := m.nextID
	m.nextID++
	m.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.subs, id)
			close(ch)
		})
	}

	return ch, cancel
}

// Publish никогда не ждет читателей: если буфер подписчика полон, пост ему не достается.
// Отправка без блокировки, поэтому ее можно делать под мьютексом, не боясь close из cancel.
func (m *SubscriptionManager) Publish(post *model.Post) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subs {
		copied := *post
		select {
		case sub <- &copied:
		default:
		}
	}
}

func (m *SubscriptionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}
