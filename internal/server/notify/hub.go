// Package notify рассылает уведомления о новых ревизиях подписчикам учетной записи.
package notify

import (
	"log/slog"
	"sync"

	"github.com/iudanet/caresync/pkg/api"
)

// subscriberBuffer уведомлений в очереди одного подписчика.
// Уведомление только будит клиента для pull, поэтому при переполнении новое отбрасывается.
const subscriberBuffer = 8

type subscriber struct {
	ch chan api.Notification
}

// Hub подписки на уведомления по user_id
type Hub struct {
	subscribers map[string]map[*subscriber]struct{}
	logger      *slog.Logger
	mu          sync.RWMutex
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[string]map[*subscriber]struct{}),
		logger:      logger,
	}
}

// Subscribe регистрирует подписчика учетной записи.
// cancel удаляет подписку и закрывает канал, повторный вызов безопасен.
func (h *Hub) Subscribe(userID string) (<-chan api.Notification, func()) {
	sub := &subscriber{ch: make(chan api.Notification, subscriberBuffer)}

	h.mu.Lock()
	subs, ok := h.subscribers[userID]
	if !ok {
		subs = make(map[*subscriber]struct{})
		h.subscribers[userID] = subs
	}
	subs[sub] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug("Watcher subscribed", "user_id", userID)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers[userID], sub)
			if len(h.subscribers[userID]) == 0 {
				delete(h.subscribers, userID)
			}
			h.mu.Unlock()
			close(sub.ch)
			h.logger.Debug("Watcher unsubscribed", "user_id", userID)
		})
	}
	return sub.ch, cancel
}

// Publish отправляет уведомление всем подписчикам учетной записи без блокировки
func (h *Hub) Publish(userID string, n api.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subscribers[userID] {
		select {
		case sub.ch <- n:
		default:
			h.logger.Debug("Watcher queue is full, notification dropped", "user_id", userID)
		}
	}
}

// Subscribers количество активных подписчиков учетной записи
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[userID])
}
