package network

import (
	"sync"

	"github.com/muneebk98/Maze-Adventures/pkg/api"
)

// Broadcaster занимается только рассылкой сообщений подписчикам.
// Отправка никогда не блокирует игровой цикл: медленный подписчик теряет сообщения.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ID подписчика -> Личный канал
	subscribers map[string]chan api.ServerMessage
	dropped     map[string]int
	bufferSize  int
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerMessage),
		dropped:     make(map[string]int),
		bufferSize:  256,
	}
}

// Register создает личный канал для подписчика (клиента или бота)
func (b *Broadcaster) Register(id string) chan api.ServerMessage {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[id]; ok {
		close(old)
	}

	ch := make(chan api.ServerMessage, b.bufferSize)
	b.subscribers[id] = ch
	b.dropped[id] = 0
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
		delete(b.dropped, id)
	}
}

// SendTo отправляет сообщение конкретному подписчику (Unicast)
func (b *Broadcaster) SendTo(id string, msg api.ServerMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		b.push(id, ch, msg)
	}
}

// Broadcast отправляет всем
func (b *Broadcaster) Broadcast(msg api.ServerMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subscribers {
		b.push(id, ch, msg)
	}
}

func (b *Broadcaster) push(id string, ch chan api.ServerMessage, msg api.ServerMessage) {
	select {
	case ch <- msg:
	default:
		b.dropped[id]++
	}
}

// HasSubscriber проверяет, подключен ли подписчик
func (b *Broadcaster) HasSubscriber(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[id]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Dropped - сколько сообщений подписчик потерял из-за переполнения.
func (b *Broadcaster) Dropped(id string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dropped[id]
}
